package collab

import (
	"fmt"

	"github.com/mgarrido/agrotrace/internal/core/domain"
)

// VarietyLookup decodes integer variety codes against fixed thresholds.
type VarietyLookup struct{}

func NewVarietyLookup() *VarietyLookup {
	return &VarietyLookup{}
}

func (VarietyLookup) VarietyOf(code int) (domain.Variety, error) {
	switch {
	case code < 0:
		return domain.VarietyUnknown, fmt.Errorf("variety code %d out of range", code)
	case code < 25:
		return domain.VarietyPicual, nil
	case code < 50:
		return domain.VarietyArbequina, nil
	case code < 75:
		return domain.VarietyHojiblanca, nil
	case code < 100:
		return domain.VarietyEmpeltre, nil
	}
	return domain.VarietyUnknown, fmt.Errorf("variety code %d out of range", code)
}
