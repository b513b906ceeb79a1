package port

import (
	"context"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// OwnershipRegistry is the external registry that issues one transferable
// identifier per planted asset and answers who currently owns it. OwnerOf
// must not fail for a minted id.
type OwnershipRegistry interface {
	OwnerOf(ctx context.Context, assetID uint64) (domain.Identity, error)
	Mint(ctx context.Context, to domain.Identity, assetID uint64) error
}

// UnitToken is the fungible unit-of-production token. The market service is
// a trusted operator: TransferFrom moves units between the given accounts
// without a separate allowance step.
type UnitToken interface {
	Mint(ctx context.Context, to domain.Identity, amount uint64) error
	TransferFrom(ctx context.Context, from, to domain.Identity, amount uint64) error
}

// VarietyLookup decodes an integer variety code at plant time.
type VarietyLookup interface {
	VarietyOf(code int) (domain.Variety, error)
}

// PaymentRail moves exact value between accounts. The core only ever asks
// for a full transfer to a single payee.
type PaymentRail interface {
	Transfer(ctx context.Context, from, to domain.Identity, amount uint64) error
}
