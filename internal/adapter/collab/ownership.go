// Package collab provides in-process implementations of the external
// collaborators the ledger consumes: the ownership registry, the fungible
// unit token, the variety lookup and the payment rail. They stand in for
// the real external systems at deployment wiring and in tests while keeping
// the port contracts honest.
package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// OwnershipRegistry issues one transferable identifier per asset and tracks
// its current owner.
type OwnershipRegistry struct {
	mu     sync.RWMutex
	owners map[uint64]domain.Identity
}

func NewOwnershipRegistry() *OwnershipRegistry {
	return &OwnershipRegistry{owners: make(map[uint64]domain.Identity)}
}

func (o *OwnershipRegistry) Mint(ctx context.Context, to domain.Identity, assetID uint64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, exists := o.owners[assetID]; exists {
		return fmt.Errorf("asset %d already minted", assetID)
	}
	o.owners[assetID] = to
	return nil
}

func (o *OwnershipRegistry) OwnerOf(ctx context.Context, assetID uint64) (domain.Identity, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	owner, ok := o.owners[assetID]
	if !ok {
		return "", fmt.Errorf("asset %d not minted", assetID)
	}
	return owner, nil
}

// Transfer reassigns an asset to a new owner. Only the current owner may
// transfer.
func (o *OwnershipRegistry) Transfer(ctx context.Context, from, to domain.Identity, assetID uint64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	owner, ok := o.owners[assetID]
	if !ok {
		return fmt.Errorf("asset %d not minted", assetID)
	}
	if owner != from {
		return fmt.Errorf("asset %d not owned by %s", assetID, from)
	}
	o.owners[assetID] = to
	return nil
}
