package domain

// AcquiredProduction is a distributor's claim on quantity pulled from a
// production. The (AssetID, ProductionID) pair references the origin without
// owning it. PricePerUnit == 0 means the entry is not listed for sale.
// Amount only grows at acquisition time and only shrinks through sales;
// zeroed entries stay addressable at their index.
type AcquiredProduction struct {
	AssetID      uint64
	ProductionID uint64
	Amount       uint64
	PricePerUnit uint64
}
