package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// UnitToken is a fungible unit-of-production token. The port is only handed
// to the market service, which is wired as the token's trusted operator, so
// TransferFrom here enforces balances, not per-spender allowances.
type UnitToken struct {
	mu       sync.Mutex
	balances map[domain.Identity]uint64
}

func NewUnitToken() *UnitToken {
	return &UnitToken{balances: make(map[domain.Identity]uint64)}
}

func (t *UnitToken) Mint(ctx context.Context, to domain.Identity, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[to] += amount
	return nil
}

func (t *UnitToken) BalanceOf(id domain.Identity) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[id]
}

func (t *UnitToken) TransferFrom(ctx context.Context, from, to domain.Identity, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return fmt.Errorf("account %s holds %d of %d units", from, t.balances[from], amount)
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}
