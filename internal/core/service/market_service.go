package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/mgarrido/agrotrace/internal/core/access"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/port"
)

// MarketService is the distributor resale ledger: per-distributor inventories
// of acquired production, listing and purchase. Acquisitions pull quantity
// out of the asset registry through the service account, which is granted
// the production-manager role once at deployment wiring.
type MarketService struct {
	roles    *access.Registry
	registry *RegistryService
	token    port.UnitToken
	payments port.PaymentRail
	idem     port.IdempotencyStore
	account  domain.Identity

	mu          sync.Mutex
	inventories map[domain.Identity][]domain.AcquiredProduction
}

func NewMarketService(
	roles *access.Registry,
	registry *RegistryService,
	token port.UnitToken,
	payments port.PaymentRail,
	idem port.IdempotencyStore,
	account domain.Identity,
) *MarketService {
	return &MarketService{
		roles:       roles,
		registry:    registry,
		token:       token,
		payments:    payments,
		idem:        idem,
		account:     account,
		inventories: make(map[domain.Identity][]domain.AcquiredProduction),
	}
}

// Acquire pulls quantity from a production into the caller's inventory. The
// registry reduction runs under the market service account; a matching
// amount of fungible units is minted to the caller. The new entry starts
// unlisted (price 0).
func (m *MarketService) Acquire(ctx context.Context, caller domain.Identity, assetID, productionID, amount uint64) (uint64, error) {
	if !m.roles.HasRole(domain.RoleDistributor, caller) {
		return 0, fmt.Errorf("acquire: %w", domain.ErrUnauthorized)
	}
	if amount == 0 {
		return 0, fmt.Errorf("acquire: zero amount: %w", domain.ErrInsufficientQuantity)
	}

	// Id bounds and the remaining-amount check live in the registry; its
	// rejection means nothing was reduced.
	if err := m.registry.ReduceProduction(ctx, m.account, assetID, productionID, amount); err != nil {
		return 0, fmt.Errorf("acquire: %w", err)
	}

	if err := m.token.Mint(ctx, caller, amount); err != nil {
		m.registry.restoreProduction(assetID, productionID, amount)
		return 0, fmt.Errorf("acquire: mint units: %w", err)
	}

	m.mu.Lock()
	entry := domain.AcquiredProduction{
		AssetID:      assetID,
		ProductionID: productionID,
		Amount:       amount,
		PricePerUnit: 0,
	}
	index := uint64(len(m.inventories[caller]))
	m.inventories[caller] = append(m.inventories[caller], entry)
	m.mu.Unlock()

	m.registry.emit(domain.Event{
		Type:         domain.EventProductionAcquired,
		AssetID:      assetID,
		ProductionID: productionID,
		Index:        index,
		Actor:        caller,
		Amount:       amount,
		Payload:      entry,
	})
	return index, nil
}

// ListForSale sets the price on an entry of the caller's own inventory.
// Indices never reach across distributors.
func (m *MarketService) ListForSale(ctx context.Context, caller domain.Identity, index, pricePerUnit uint64) error {
	if !m.roles.HasRole(domain.RoleDistributor, caller) {
		return fmt.Errorf("list for sale: %w", domain.ErrUnauthorized)
	}
	if pricePerUnit == 0 {
		return fmt.Errorf("list for sale: zero price: %w", domain.ErrInvalidPayment)
	}

	m.mu.Lock()
	inv := m.inventories[caller]
	if index >= uint64(len(inv)) {
		m.mu.Unlock()
		return fmt.Errorf("list for sale: entry %d: %w", index, domain.ErrNotFound)
	}
	inv[index].PricePerUnit = pricePerUnit
	entry := inv[index]
	m.mu.Unlock()

	m.registry.emit(domain.Event{
		Type:         domain.EventProductionListed,
		AssetID:      entry.AssetID,
		ProductionID: entry.ProductionID,
		Index:        index,
		Actor:        caller,
		Amount:       entry.Amount,
		PricePerUnit: pricePerUnit,
		Payload:      entry,
	})
	return nil
}

// Buy purchases amount units from a distributor's listed entry. The attached
// payment must equal exactly amount*pricePerUnit; the full payment goes to
// the distributor and the matching fungible units move distributor to buyer.
// All bookkeeping commits before value leaves the ledger, so a re-entrant
// call during the transfers observes consistent state; a failed transfer is
// rolled back.
func (m *MarketService) Buy(ctx context.Context, buyer domain.Identity, requestID string, distributor domain.Identity, index, amount, paid uint64) error {
	ok, err := m.idem.SetIdempotency(ctx, "buy:"+requestID)
	if err != nil {
		return fmt.Errorf("buy: idempotency check failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("buy: %w", domain.ErrDuplicateRequest)
	}

	m.mu.Lock()
	inv := m.inventories[distributor]
	if index >= uint64(len(inv)) {
		m.mu.Unlock()
		return fmt.Errorf("buy: entry %d of %s: %w", index, distributor, domain.ErrNotFound)
	}
	entry := &inv[index]
	if entry.PricePerUnit == 0 {
		m.mu.Unlock()
		return fmt.Errorf("buy: entry %d of %s: %w", index, distributor, domain.ErrNotListed)
	}
	if amount == 0 || amount > entry.Amount {
		m.mu.Unlock()
		return fmt.Errorf("buy: requested %d of %d: %w", amount, entry.Amount, domain.ErrInsufficientQuantity)
	}
	if entry.PricePerUnit > math.MaxUint64/amount {
		m.mu.Unlock()
		return fmt.Errorf("buy: price overflow: %w", domain.ErrInvalidPayment)
	}
	due := amount * entry.PricePerUnit
	if paid != due {
		m.mu.Unlock()
		return fmt.Errorf("buy: paid %d, due %d: %w", paid, due, domain.ErrInvalidPayment)
	}
	entry.Amount -= amount
	remaining := entry.Amount
	sold := *entry
	m.mu.Unlock()

	if err := m.payments.Transfer(ctx, buyer, distributor, paid); err != nil {
		m.restoreEntry(distributor, index, amount)
		return fmt.Errorf("buy: payment transfer: %w", err)
	}
	if err := m.token.TransferFrom(ctx, distributor, buyer, amount); err != nil {
		if refundErr := m.payments.Transfer(ctx, distributor, buyer, paid); refundErr != nil {
			m.restoreEntry(distributor, index, amount)
			return fmt.Errorf("buy: unit transfer: %w (refund also failed: %v)", err, refundErr)
		}
		m.restoreEntry(distributor, index, amount)
		return fmt.Errorf("buy: unit transfer: %w", err)
	}

	m.registry.emit(domain.Event{
		Type:         domain.EventProductionSold,
		AssetID:      sold.AssetID,
		ProductionID: sold.ProductionID,
		Index:        index,
		Actor:        buyer,
		Counterparty: distributor,
		Amount:       amount,
		Remaining:    remaining,
		PricePerUnit: sold.PricePerUnit,
		Payload:      sold,
	})
	return nil
}

func (m *MarketService) restoreEntry(distributor domain.Identity, index, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inv := m.inventories[distributor]; index < uint64(len(inv)) {
		inv[index].Amount += amount
	}
}

// Inventory returns a copy of a distributor's inventory.
func (m *MarketService) Inventory(distributor domain.Identity) []domain.AcquiredProduction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AcquiredProduction(nil), m.inventories[distributor]...)
}

// Entry returns one inventory entry by index.
func (m *MarketService) Entry(distributor domain.Identity, index uint64) (domain.AcquiredProduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv := m.inventories[distributor]
	if index >= uint64(len(inv)) {
		return domain.AcquiredProduction{}, fmt.Errorf("entry %d of %s: %w", index, distributor, domain.ErrNotFound)
	}
	return inv[index], nil
}
