package coupon

import (
	"strings"

	"checkout/internal/pkg/errs"
)

// Type selects how Value is interpreted.
type Type int

const (
	Percentage Type = iota + 1
	Fixed
)

var typeNames = map[Type]string{
	Percentage: "PERCENTAGE",
	Fixed:      "FIXED",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidError("coupon type")
	}
	return nil
}

// ParseType accepts the wire names, case-insensitively.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, errs.NewValueIsInvalidError("coupon type " + s)
}
