package domain

import "time"

// Identity is an account that calls into the ledger: a farmer, a
// distributor, a buyer or one of the wired service accounts.
type Identity string

type Variety int

const (
	VarietyUnknown Variety = iota
	VarietyPicual
	VarietyArbequina
	VarietyHojiblanca
	VarietyEmpeltre
)

func (v Variety) String() string {
	switch v {
	case VarietyPicual:
		return "picual"
	case VarietyArbequina:
		return "arbequina"
	case VarietyHojiblanca:
		return "hojiblanca"
	case VarietyEmpeltre:
		return "empeltre"
	}
	return "unknown"
}

// Location pins an asset to a plot: coordinates, cadastral codes and the
// free-text plot / municipality names.
type Location struct {
	Latitude     string
	Longitude    string
	ProvinceCode int
	PolygonCode  int
	Plot         string
	Municipality string
}

// Treatment is an immutable log entry for an intervention applied to an
// asset. Entries are indexed 0..N-1 per asset and never change once recorded.
type Treatment struct {
	Date             time.Time
	Dose             string
	Product          string
	ActiveIngredient string
	Method           string
	Target           string
	Operator         string
}

// Production is one harvest batch recorded against an asset. Amount is the
// quantity still on the asset's books; TotalAmount is the original harvest
// and never changes after creation. Invariant: 0 <= Amount <= TotalAmount.
type Production struct {
	Date        time.Time
	Amount      uint64
	TotalAmount uint64
}

// Asset is a planted, uniquely owned unit of produce-bearing inventory.
// Ownership is not tracked here; the ownership registry collaborator is the
// single source of truth for who owns an asset id.
type Asset struct {
	ID          uint64
	PlantedAt   time.Time
	Variety     Variety
	Class       string
	Location    Location
	Treatments  []Treatment
	Productions []Production
}
