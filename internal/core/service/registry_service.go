package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mgarrido/agrotrace/internal/core/access"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/port"
)

// DefaultPlantingFee is the planting fee a fresh registry starts with; it is
// admin-adjustable afterwards.
const DefaultPlantingFee uint64 = 50

// RegistryService is the asset registry and production ledger. It owns the
// catalog of planted assets and their per-asset treatment and production
// logs, and is the sole surface through which recorded quantity leaves an
// asset's books. Every mutating call validates role membership, ownership
// and id bounds before touching state, so a rejected call leaves no trace.
type RegistryService struct {
	roles     *access.Registry
	ownership port.OwnershipRegistry
	varieties port.VarietyLookup
	payments  port.PaymentRail
	treasury  domain.Identity

	mu            sync.Mutex
	assets        map[uint64]*domain.Asset
	numAssets     uint64
	plantingFee   uint64
	feesCollected uint64

	withdrawing atomic.Bool

	events chan domain.Event
}

func NewRegistryService(
	roles *access.Registry,
	ownership port.OwnershipRegistry,
	varieties port.VarietyLookup,
	payments port.PaymentRail,
	treasury domain.Identity,
	queueSize int,
) *RegistryService {
	return &RegistryService{
		roles:       roles,
		ownership:   ownership,
		varieties:   varieties,
		payments:    payments,
		treasury:    treasury,
		assets:      make(map[uint64]*domain.Asset),
		plantingFee: DefaultPlantingFee,
		events:      make(chan domain.Event, queueSize),
	}
}

// Events exposes the queue of committed events for the journaling workers.
func (s *RegistryService) Events() <-chan domain.Event {
	return s.events
}

func (s *RegistryService) Close() {
	close(s.events)
}

// emit is called with s.mu held (or, for market operations, after the market
// mutation committed) so the queue order matches commit order.
func (s *RegistryService) emit(ev domain.Event) {
	ev.ID = uuid.NewString()
	ev.OccurredAt = time.Now()
	s.events <- ev
}

// Plant registers a new asset for the calling farmer. The attached payment
// must cover the current planting fee; the full payment is collected. The
// ownership registry mints the new id to the caller.
func (s *RegistryService) Plant(
	ctx context.Context,
	caller domain.Identity,
	payment uint64,
	varietyCode int,
	class string,
	loc domain.Location,
) (uint64, error) {
	if !s.roles.HasRole(domain.RoleFarmer, caller) {
		return 0, fmt.Errorf("plant: %w", domain.ErrUnauthorized)
	}

	variety, err := s.varieties.VarietyOf(varietyCode)
	if err != nil {
		return 0, fmt.Errorf("plant: decode variety %d: %w", varietyCode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payment < s.plantingFee {
		return 0, fmt.Errorf("plant: payment %d below fee %d: %w", payment, s.plantingFee, domain.ErrInvalidPayment)
	}

	id := s.numAssets + 1

	if err := s.payments.Transfer(ctx, caller, s.treasury, payment); err != nil {
		return 0, fmt.Errorf("plant: collect fee: %w", err)
	}
	if err := s.ownership.Mint(ctx, caller, id); err != nil {
		// Refund the collected fee; nothing was recorded yet.
		if refundErr := s.payments.Transfer(ctx, s.treasury, caller, payment); refundErr != nil {
			return 0, fmt.Errorf("plant: mint asset %d: %w (refund also failed: %v)", id, err, refundErr)
		}
		return 0, fmt.Errorf("plant: mint asset %d: %w", id, err)
	}

	asset := &domain.Asset{
		ID:        id,
		PlantedAt: time.Now(),
		Variety:   variety,
		Class:     class,
		Location:  loc,
	}
	s.assets[id] = asset
	s.numAssets = id
	s.feesCollected += payment

	s.emit(domain.Event{
		Type:    domain.EventAssetPlanted,
		AssetID: id,
		Actor:   caller,
		Payload: *asset,
	})
	return id, nil
}

// PlantingFee returns the current fee.
func (s *RegistryService) PlantingFee() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plantingFee
}

// SetPlantingFee updates the fee. Admin only.
func (s *RegistryService) SetPlantingFee(caller domain.Identity, fee uint64) error {
	if !s.roles.HasRole(domain.RoleAdmin, caller) {
		return fmt.Errorf("set planting fee: %w", domain.ErrUnauthorized)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plantingFee = fee
	return nil
}

// ownedAsset resolves an asset and checks that caller is its current owner
// per the ownership registry. Must be called with s.mu held.
func (s *RegistryService) ownedAsset(ctx context.Context, caller domain.Identity, assetID uint64) (*domain.Asset, error) {
	asset, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	owner, err := s.ownership.OwnerOf(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset %d: resolve owner: %w", assetID, err)
	}
	if owner != caller {
		return nil, fmt.Errorf("asset %d: caller is not the owner: %w", assetID, domain.ErrUnauthorized)
	}
	return asset, nil
}

// AddTreatment appends an immutable treatment record to the asset's log and
// returns its index. Farmer role plus current ownership required.
func (s *RegistryService) AddTreatment(ctx context.Context, caller domain.Identity, assetID uint64, t domain.Treatment) (uint64, error) {
	if !s.roles.HasRole(domain.RoleFarmer, caller) {
		return 0, fmt.Errorf("add treatment: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.ownedAsset(ctx, caller, assetID)
	if err != nil {
		return 0, fmt.Errorf("add treatment: %w", err)
	}

	index := uint64(len(asset.Treatments))
	asset.Treatments = append(asset.Treatments, t)

	s.emit(domain.Event{
		Type:    domain.EventTreatmentAdded,
		AssetID: assetID,
		Index:   index,
		Actor:   caller,
		Payload: t,
	})
	return index, nil
}

// AddProduction records a new harvest batch with amount == totalAmount ==
// quantity and returns its index. Farmer role plus current ownership.
func (s *RegistryService) AddProduction(ctx context.Context, caller domain.Identity, assetID uint64, date time.Time, quantity uint64) (uint64, error) {
	if !s.roles.HasRole(domain.RoleFarmer, caller) {
		return 0, fmt.Errorf("add production: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.ownedAsset(ctx, caller, assetID)
	if err != nil {
		return 0, fmt.Errorf("add production: %w", err)
	}

	index := uint64(len(asset.Productions))
	p := domain.Production{Date: date, Amount: quantity, TotalAmount: quantity}
	asset.Productions = append(asset.Productions, p)

	s.emit(domain.Event{
		Type:         domain.EventProductionAdded,
		AssetID:      assetID,
		ProductionID: index,
		Actor:        caller,
		Amount:       quantity,
		Remaining:    quantity,
		Payload:      p,
	})
	return index, nil
}

// ReduceProduction decrements a production's remaining amount. This is the
// only path by which quantity leaves an asset's books, gated on the
// production-manager role; the distributor acquisition path holds that role
// through its service account, granted at deployment wiring.
func (s *RegistryService) ReduceProduction(ctx context.Context, caller domain.Identity, assetID, productionID, amount uint64) error {
	if !s.roles.HasRole(domain.RoleProductionManager, caller) {
		return fmt.Errorf("reduce production: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.production(assetID, productionID)
	if err != nil {
		return fmt.Errorf("reduce production: %w", err)
	}
	if amount > p.Amount {
		return fmt.Errorf("reduce production: requested %d exceeds remaining %d: %w", amount, p.Amount, domain.ErrInsufficientQuantity)
	}
	p.Amount -= amount

	s.emit(domain.Event{
		Type:         domain.EventProductionReduced,
		AssetID:      assetID,
		ProductionID: productionID,
		Actor:        caller,
		Amount:       amount,
		Remaining:    p.Amount,
	})
	return nil
}

// restoreProduction undoes a reduction after a downstream failure in the
// acquisition path. Internal: not reachable from any public surface.
func (s *RegistryService) restoreProduction(assetID, productionID, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, err := s.production(assetID, productionID); err == nil {
		p.Amount += amount
	}
}

// production resolves a production record with uniform bounds validation.
// Must be called with s.mu held.
func (s *RegistryService) production(assetID, productionID uint64) (*domain.Production, error) {
	asset, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	if productionID >= uint64(len(asset.Productions)) {
		return nil, fmt.Errorf("asset %d production %d: %w", assetID, productionID, domain.ErrNotFound)
	}
	return &asset.Productions[productionID], nil
}

// UpdateLocation rewrites the asset's location in place. Farmer role plus
// current ownership; no counters move and no event is emitted.
func (s *RegistryService) UpdateLocation(ctx context.Context, caller domain.Identity, assetID uint64, loc domain.Location) error {
	if !s.roles.HasRole(domain.RoleFarmer, caller) {
		return fmt.Errorf("update location: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.ownedAsset(ctx, caller, assetID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	asset.Location = loc
	return nil
}

// UpdateClass rewrites the asset's class in place.
func (s *RegistryService) UpdateClass(ctx context.Context, caller domain.Identity, assetID uint64, class string) error {
	if !s.roles.HasRole(domain.RoleFarmer, caller) {
		return fmt.Errorf("update class: %w", domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.ownedAsset(ctx, caller, assetID)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	asset.Class = class
	return nil
}

// RecordTransport emits a transport event for a production. Transporter role
// plus current ownership; pure emission, no ledger effect.
func (s *RegistryService) RecordTransport(ctx context.Context, caller domain.Identity, assetID, productionID uint64, note string) error {
	return s.recordLogistics(ctx, domain.RoleTransporter, domain.EventProductionTransport, caller, assetID, productionID, note)
}

// RecordStorage emits a storage event for a production. Storage-handler role
// plus current ownership; pure emission, no ledger effect.
func (s *RegistryService) RecordStorage(ctx context.Context, caller domain.Identity, assetID, productionID uint64, note string) error {
	return s.recordLogistics(ctx, domain.RoleStorageHandler, domain.EventProductionStored, caller, assetID, productionID, note)
}

func (s *RegistryService) recordLogistics(ctx context.Context, role domain.Role, typ domain.EventType, caller domain.Identity, assetID, productionID uint64, note string) error {
	if !s.roles.HasRole(role, caller) {
		return fmt.Errorf("%s: %w", typ, domain.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedAsset(ctx, caller, assetID); err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}
	if _, err := s.production(assetID, productionID); err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}

	s.emit(domain.Event{
		Type:         typ,
		AssetID:      assetID,
		ProductionID: productionID,
		Actor:        caller,
		Payload:      note,
	})
	return nil
}

// NumAssets returns the count of planted assets; valid ids are 1..NumAssets.
func (s *RegistryService) NumAssets() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numAssets
}

// Asset returns a copy of the asset record, logs included.
func (s *RegistryService) Asset(assetID uint64) (domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return domain.Asset{}, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	out := *asset
	out.Treatments = append([]domain.Treatment(nil), asset.Treatments...)
	out.Productions = append([]domain.Production(nil), asset.Productions...)
	return out, nil
}

// Productions returns a copy of the asset's production log.
func (s *RegistryService) Productions(assetID uint64) ([]domain.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	return append([]domain.Production(nil), asset.Productions...), nil
}

// Production returns one production record by index.
func (s *RegistryService) Production(assetID, productionID uint64) (domain.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.production(assetID, productionID)
	if err != nil {
		return domain.Production{}, err
	}
	return *p, nil
}

// Treatments returns a copy of the asset's treatment log.
func (s *RegistryService) Treatments(assetID uint64) ([]domain.Treatment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	return append([]domain.Treatment(nil), asset.Treatments...), nil
}

// Treatment returns one treatment record by index.
func (s *RegistryService) Treatment(assetID, treatmentID uint64) (domain.Treatment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return domain.Treatment{}, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	if treatmentID >= uint64(len(asset.Treatments)) {
		return domain.Treatment{}, fmt.Errorf("asset %d treatment %d: %w", assetID, treatmentID, domain.ErrNotFound)
	}
	return asset.Treatments[treatmentID], nil
}

// TreeAge returns the time elapsed since the asset was planted.
func (s *RegistryService) TreeAge(assetID uint64) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, ok := s.assets[assetID]
	if !ok {
		return 0, fmt.Errorf("asset %d: %w", assetID, domain.ErrNotFound)
	}
	return time.Since(asset.PlantedAt), nil
}

// FeesCollected returns the withdrawable planting-fee balance.
func (s *RegistryService) FeesCollected() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feesCollected
}

// WithdrawFees sends the accumulated planting fees to an arbitrary address.
// Admin only. The balance is zeroed before the outbound transfer and the
// guard rejects re-entry while the transfer is in flight.
func (s *RegistryService) WithdrawFees(ctx context.Context, caller, to domain.Identity) (uint64, error) {
	if !s.roles.HasRole(domain.RoleAdmin, caller) {
		return 0, fmt.Errorf("withdraw fees: %w", domain.ErrUnauthorized)
	}
	if !s.withdrawing.CompareAndSwap(false, true) {
		return 0, fmt.Errorf("withdraw fees: %w", domain.ErrReentrancy)
	}
	defer s.withdrawing.Store(false)

	s.mu.Lock()
	amount := s.feesCollected
	s.feesCollected = 0
	s.mu.Unlock()

	if amount == 0 {
		return 0, nil
	}

	if err := s.payments.Transfer(ctx, s.treasury, to, amount); err != nil {
		s.mu.Lock()
		s.feesCollected += amount
		s.mu.Unlock()
		return 0, fmt.Errorf("withdraw fees: %w", err)
	}
	return amount, nil
}
