package port

import (
	"context"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

type EventJournal interface {
	// Append persists one core event; the journal is append-only.
	Append(ctx context.Context, event domain.Event) error

	// EventsByAsset returns the journaled events for an asset, oldest first.
	EventsByAsset(ctx context.Context, assetID uint64) ([]domain.Event, error)
}
