package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// PaymentRail is an account-balance ledger that moves exact value between
// identities. Transfers fail on insufficient balance and are otherwise
// atomic.
type PaymentRail struct {
	mu       sync.Mutex
	balances map[domain.Identity]uint64
}

func NewPaymentRail() *PaymentRail {
	return &PaymentRail{balances: make(map[domain.Identity]uint64)}
}

// Fund credits an account. Wiring and test helper.
func (p *PaymentRail) Fund(id domain.Identity, amount uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balances[id] += amount
}

func (p *PaymentRail) BalanceOf(id domain.Identity) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balances[id]
}

func (p *PaymentRail) Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.balances[from] < amount {
		return fmt.Errorf("account %s holds %d of %d", from, p.balances[from], amount)
	}
	p.balances[from] -= amount
	p.balances[to] += amount
	return nil
}
