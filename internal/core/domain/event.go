package domain

import "time"

type EventType string

const (
	EventAssetPlanted        EventType = "asset-planted"
	EventTreatmentAdded      EventType = "treatment-added"
	EventProductionAdded     EventType = "production-added"
	EventProductionTransport EventType = "production-transported"
	EventProductionStored    EventType = "production-stored"
	EventProductionReduced   EventType = "production-reduced"
	EventProductionAcquired  EventType = "production-acquired"
	EventProductionListed    EventType = "production-listed-for-sale"
	EventProductionSold      EventType = "production-sold"
)

// Event is one entry of the append-only core event log. Ids that do not
// apply to a given type are left zero; Remaining carries the post-operation
// remaining amount for quantity-bearing events so the read-side mirror can
// be rebuilt from the log alone.
type Event struct {
	ID           string
	Type         EventType
	AssetID      uint64
	ProductionID uint64
	Index        uint64
	Actor        Identity
	Counterparty Identity
	Amount       uint64
	Remaining    uint64
	PricePerUnit uint64
	Payload      any
	OccurredAt   time.Time
}
