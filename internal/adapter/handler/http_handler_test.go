package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mgarrido/agrotrace/internal/adapter/collab"
	"github.com/mgarrido/agrotrace/internal/core/access"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/core/service"
)

const (
	admin       = domain.Identity("admin")
	treasury    = domain.Identity("treasury")
	marketAcct  = domain.Identity("market-service")
	farmer      = domain.Identity("farmer-1")
	distributor = domain.Identity("distributor-1")
	buyer       = domain.Identity("buyer-1")
)

type memIdem struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (m *memIdem) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

type memJournal struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *memJournal) Append(ctx context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memJournal) EventsByAsset(ctx context.Context, assetID uint64) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Event
	for _, ev := range m.events {
		if ev.AssetID == assetID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type env struct {
	mux      *http.ServeMux
	rail     *collab.PaymentRail
	journal  *memJournal
	registry *service.RegistryService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	roles := access.NewRegistry(admin)
	ownership := collab.NewOwnershipRegistry()
	token := collab.NewUnitToken()
	rail := collab.NewPaymentRail()

	registry := service.NewRegistryService(roles, ownership, collab.NewVarietyLookup(), rail, treasury, 1000)
	t.Cleanup(registry.Close)
	market := service.NewMarketService(roles, registry, token, rail, &memIdem{seen: make(map[string]bool)}, marketAcct)

	journal := &memJournal{}
	go func() {
		for ev := range registry.Events() {
			journal.Append(context.Background(), ev)
		}
	}()

	for _, grant := range []struct {
		role domain.Role
		id   domain.Identity
	}{
		{domain.RoleFarmer, farmer},
		{domain.RoleDistributor, distributor},
		{domain.RoleProductionManager, marketAcct},
	} {
		if err := roles.Grant(admin, grant.role, grant.id); err != nil {
			t.Fatalf("grant %s: %v", grant.role, err)
		}
	}
	rail.Fund(farmer, 1000)
	rail.Fund(buyer, 1000)

	mux := http.NewServeMux()
	NewHTTPHandler(roles, registry, market, journal, nil).Register(mux)
	return &env{mux: mux, rail: rail, journal: journal, registry: registry}
}

func (e *env) post(t *testing.T, path string, caller domain.Identity, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	if caller != "" {
		req.Header.Set("X-Identity", string(caller))
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *env) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *env) plant(t *testing.T) uint64 {
	t.Helper()

	rec := e.post(t, "/api/plant", farmer, plantRequest{
		Payment:     service.DefaultPlantingFee,
		VarietyCode: 10,
		Class:       "intensive",
		Location:    locationRequest{Latitude: "37.77", Longitude: "-3.79", Municipality: "Jaen"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("plant returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]uint64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp["asset_id"]
}

func TestPlantEndpoint(t *testing.T) {
	e := newEnv(t)

	if id := e.plant(t); id != 1 {
		t.Errorf("expected asset id 1, got %d", id)
	}

	// Missing identity header
	rec := e.post(t, "/api/plant", "", plantRequest{Payment: service.DefaultPlantingFee})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	// Caller without the farmer role
	rec = e.post(t, "/api/plant", buyer, plantRequest{Payment: service.DefaultPlantingFee, VarietyCode: 10})
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}

	// Payment below fee
	rec = e.post(t, "/api/plant", farmer, plantRequest{Payment: 1, VarietyCode: 10})
	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("expected 402, got %d", rec.Code)
	}
}

func TestChainOfCustodyEndpoints(t *testing.T) {
	e := newEnv(t)
	id := e.plant(t)

	rec := e.post(t, "/api/production", farmer, productionRequest{AssetID: id, Quantity: 100})
	if rec.Code != http.StatusOK {
		t.Fatalf("production returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = e.post(t, "/api/acquire", distributor, acquireRequest{AssetID: id, ProductionID: 0, Amount: 50})
	if rec.Code != http.StatusOK {
		t.Fatalf("acquire returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = e.post(t, "/api/list", distributor, listRequest{Index: 0, PricePerUnit: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", rec.Code, rec.Body.String())
	}

	// Wrong payment is rejected with 402
	rec = e.post(t, "/api/buy", buyer, buyRequest{
		RequestID: "req-1", Distributor: string(distributor), Index: 0, Amount: 50, Payment: 99,
	})
	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("expected 402, got %d", rec.Code)
	}

	rec = e.post(t, "/api/buy", buyer, buyRequest{
		RequestID: "req-2", Distributor: string(distributor), Index: 0, Amount: 50, Payment: 100,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("buy returned %d: %s", rec.Code, rec.Body.String())
	}

	// Replay of a request id conflicts
	rec = e.post(t, "/api/buy", buyer, buyRequest{
		RequestID: "req-2", Distributor: string(distributor), Index: 0, Amount: 50, Payment: 100,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	rec = e.get(t, "/api/remaining?asset_id=1&production_id=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("remaining returned %d", rec.Code)
	}
	var remaining map[string]uint64
	if err := json.Unmarshal(rec.Body.Bytes(), &remaining); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if remaining["remaining"] != 50 {
		t.Errorf("expected remaining 50, got %d", remaining["remaining"])
	}
}

func TestRoleEndpoints(t *testing.T) {
	e := newEnv(t)

	rec := e.post(t, "/api/roles/grant", farmer, roleRequest{Role: "farmer", Identity: "other"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}

	rec = e.post(t, "/api/roles/grant", admin, roleRequest{Role: "farmer", Identity: "other"})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = e.post(t, "/api/council/add", admin, councilRequest{Identity: "council-1"})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestFeeAndWithdrawEndpoints(t *testing.T) {
	e := newEnv(t)
	e.plant(t)

	rec := e.get(t, "/api/fee")
	if rec.Code != http.StatusOK {
		t.Fatalf("fee returned %d", rec.Code)
	}

	rec = e.post(t, "/api/fee", admin, feeRequest{Fee: 75})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := e.registry.PlantingFee(); got != 75 {
		t.Errorf("expected fee 75, got %d", got)
	}

	rec = e.post(t, "/api/withdraw", admin, withdrawRequest{To: "cold-wallet"})
	if rec.Code != http.StatusOK {
		t.Fatalf("withdraw returned %d: %s", rec.Code, rec.Body.String())
	}
	if got := e.rail.BalanceOf("cold-wallet"); got != service.DefaultPlantingFee {
		t.Errorf("expected withdrawn balance %d, got %d", service.DefaultPlantingFee, got)
	}
}

func TestReadEndpoints_NotFound(t *testing.T) {
	e := newEnv(t)

	rec := e.get(t, "/api/asset?id=1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	rec = e.get(t, "/api/asset?id=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEventsEndpoint(t *testing.T) {
	e := newEnv(t)
	id := e.plant(t)
	e.post(t, "/api/production", farmer, productionRequest{AssetID: id, Quantity: 100})

	// Give the journaling goroutine a moment to drain the queue.
	deadline := time.Now().Add(time.Second)
	for {
		if evs, _ := e.journal.EventsByAsset(context.Background(), id); len(evs) >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("journal never received the events")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec := e.get(t, "/api/events?asset_id=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("events returned %d", rec.Code)
	}
	var events []domain.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(events) < 2 {
		t.Errorf("expected at least 2 journaled events, got %d", len(events))
	}
}
