// Package carelog holds the care log domain types shared by the ledger and
// the client.
package carelog

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petguard/internal/common"
)

// Category is the closed set of care log kinds.
type Category uint8

const (
	Feeding Category = iota
	Medication
	Activity
)

// Categories lists every valid category in wire order.
var Categories = []Category{Feeding, Medication, Activity}

// CategoryFromUint8 maps a wire value to a Category.
func CategoryFromUint8(v uint8) (Category, error) {
	switch Category(v) {
	case Feeding, Medication, Activity:
		return Category(v), nil
	default:
		return 0, fmt.Errorf("%w: category %d out of range", common.ErrValidation, v)
	}
}

// CategoryFromUint32 is CategoryFromUint8 for wider wire fields.
func CategoryFromUint32(v uint32) (Category, error) {
	if v > 0xff {
		return 0, fmt.Errorf("%w: category %d out of range", common.ErrValidation, v)
	}
	return CategoryFromUint8(uint8(v))
}

// ParseCategory accepts the lower-case name or the decimal wire value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "feeding", "0":
		return Feeding, nil
	case "medication", "1":
		return Medication, nil
	case "activity", "2":
		return Activity, nil
	default:
		return 0, fmt.Errorf("%w: unknown category %q", common.ErrValidation, s)
	}
}

func (c Category) String() string {
	switch c {
	case Feeding:
		return "feeding"
	case Medication:
		return "medication"
	case Activity:
		return "activity"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

func (c Category) Valid() bool {
	_, err := CategoryFromUint8(uint8(c))
	return err == nil
}
