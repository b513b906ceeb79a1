// Command scenario drives the full chain of custody against an in-process
// ledger: plant, harvest, acquire, list, buy. It checks quantity
// conservation and payment exactness at each step and prints a pass/fail
// summary.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

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

	harvest   = 100
	acquired  = 50
	unitPrice = 2
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

func main() {
	ctx := context.Background()

	roles := access.NewRegistry(admin)
	ownership := collab.NewOwnershipRegistry()
	token := collab.NewUnitToken()
	payments := collab.NewPaymentRail()

	registry := service.NewRegistryService(roles, ownership, collab.NewVarietyLookup(), payments, treasury, 100)
	defer registry.Close()
	market := service.NewMarketService(roles, registry, token, payments, &memIdem{seen: make(map[string]bool)}, marketAcct)

	// Drain the event queue in background
	go func() {
		for range registry.Events() {
		}
	}()

	must := func(step string, err error) {
		if err != nil {
			log.Fatalf("%s: %v", step, err)
		}
	}

	must("grant farmer", roles.Grant(admin, domain.RoleFarmer, farmer))
	must("grant distributor", roles.Grant(admin, domain.RoleDistributor, distributor))
	must("grant market capability", roles.Grant(admin, domain.RoleProductionManager, marketAcct))

	payments.Fund(farmer, service.DefaultPlantingFee)
	payments.Fund(buyer, acquired*unitPrice)

	assetID, err := registry.Plant(ctx, farmer, service.DefaultPlantingFee, 30, "intensive", domain.Location{
		Latitude:     "37.7765",
		Longitude:    "-3.7908",
		ProvinceCode: 23,
		PolygonCode:  12,
		Plot:         "14",
		Municipality: "Jaen",
	})
	must("plant", err)

	prodID, err := registry.AddProduction(ctx, farmer, assetID, time.Now(), harvest)
	must("add production", err)

	invIdx, err := market.Acquire(ctx, distributor, assetID, prodID, acquired)
	must("acquire", err)

	must("list for sale", market.ListForSale(ctx, distributor, invIdx, unitPrice))

	// Underpayment and overpayment must both be rejected.
	if err := market.Buy(ctx, buyer, uuid.NewString(), distributor, invIdx, acquired, acquired*unitPrice-1); err == nil {
		log.Fatal("underpayment accepted")
	}
	if err := market.Buy(ctx, buyer, uuid.NewString(), distributor, invIdx, acquired, acquired*unitPrice+1); err == nil {
		log.Fatal("overpayment accepted")
	}
	must("buy", market.Buy(ctx, buyer, uuid.NewString(), distributor, invIdx, acquired, acquired*unitPrice))

	production, err := registry.Production(assetID, prodID)
	must("read production", err)
	entry, err := market.Entry(distributor, invIdx)
	must("read entry", err)

	fmt.Println("========== SCENARIO RESULTS ==========")
	fmt.Printf("Asset:                 %d\n", assetID)
	fmt.Printf("Harvested:             %d\n", harvest)
	fmt.Printf("Remaining on asset:    %d\n", production.Amount)
	fmt.Printf("Distributor entry:     %d\n", entry.Amount)
	fmt.Printf("Buyer units:           %d\n", token.BalanceOf(buyer))
	fmt.Printf("Distributor payment:   %d\n", payments.BalanceOf(distributor))
	fmt.Println("======================================")

	ok := production.Amount == harvest-acquired &&
		entry.Amount == 0 &&
		token.BalanceOf(buyer) == acquired &&
		payments.BalanceOf(distributor) == acquired*unitPrice

	if ok {
		fmt.Println("PASS: quantity conserved and payment exact")
	} else {
		fmt.Println("FAIL: ledger out of balance")
	}
}
