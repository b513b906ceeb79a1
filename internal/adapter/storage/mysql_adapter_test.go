package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/agrotrace?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func TestAppendAndQueryEvents(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	// Use an asset id outside normal ranges to isolate the test rows.
	const assetID = 999999
	db.ExecContext(ctx, `DELETE FROM events WHERE asset_id = ?`, assetID)

	events := []domain.Event{
		{
			ID:         uuid.NewString(),
			Type:       domain.EventProductionAdded,
			AssetID:    assetID,
			Actor:      "farmer-1",
			Amount:     100,
			Remaining:  100,
			Payload:    domain.Production{Amount: 100, TotalAmount: 100},
			OccurredAt: time.Now().UTC().Truncate(time.Microsecond),
		},
		{
			ID:         uuid.NewString(),
			Type:       domain.EventProductionReduced,
			AssetID:    assetID,
			Actor:      "market-service",
			Amount:     40,
			Remaining:  60,
			OccurredAt: time.Now().UTC().Truncate(time.Microsecond).Add(time.Millisecond),
		},
	}
	for _, ev := range events {
		if err := adapter.Append(ctx, ev); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	stored, err := adapter.EventsByAsset(ctx, assetID)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 events, got %d", len(stored))
	}
	if stored[0].Type != domain.EventProductionAdded || stored[1].Type != domain.EventProductionReduced {
		t.Errorf("expected journal order oldest first, got %s, %s", stored[0].Type, stored[1].Type)
	}
	if stored[1].Remaining != 60 || stored[1].Amount != 40 {
		t.Errorf("stored event mismatch: %+v", stored[1])
	}
	if stored[0].ID != events[0].ID {
		t.Errorf("expected id %s, got %s", events[0].ID, stored[0].ID)
	}
}
