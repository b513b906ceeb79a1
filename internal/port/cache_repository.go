package port

import "context"

type QuantityCache interface {
	// SetRemaining mirrors the remaining amount of a production after a
	// committed operation.
	SetRemaining(ctx context.Context, assetID, productionID, remaining uint64) error

	// Remaining reads the mirrored amount, returning ok=false on a cache miss.
	Remaining(ctx context.Context, assetID, productionID uint64) (uint64, bool, error)
}

type IdempotencyStore interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)
}
