package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// MySQLAdapter is the durable event journal. Events are append-only and
// indexed by asset id for external querying.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Append(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO events (id, type, asset_id, production_id, idx, actor, counterparty,
			amount, remaining, price_per_unit, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.Type), ev.AssetID, ev.ProductionID, ev.Index, string(ev.Actor),
		string(ev.Counterparty), ev.Amount, ev.Remaining, ev.PricePerUnit, payload,
		ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) EventsByAsset(ctx context.Context, assetID uint64) ([]domain.Event, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, type, asset_id, production_id, idx, actor, counterparty,
			amount, remaining, price_per_unit, payload, occurred_at
		FROM events WHERE asset_id = ? ORDER BY occurred_at, id`, assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			ev      domain.Event
			typ     string
			actor   string
			counter string
			payload []byte
		)
		if err := rows.Scan(&ev.ID, &typ, &ev.AssetID, &ev.ProductionID, &ev.Index,
			&actor, &counter, &ev.Amount, &ev.Remaining, &ev.PricePerUnit,
			&payload, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Type = domain.EventType(typ)
		ev.Actor = domain.Identity(actor)
		ev.Counterparty = domain.Identity(counter)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &ev.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal payload: %w", err)
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
