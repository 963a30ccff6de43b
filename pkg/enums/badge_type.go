package enums

import "fmt"

// BadgeType labels an offer card in the storefront UI.
type BadgeType string

const (
	BadgeTypeHot      BadgeType = "hot"
	BadgeTypeDiscount BadgeType = "discount"
)

var validBadgeTypes = []BadgeType{
	BadgeTypeHot,
	BadgeTypeDiscount,
}

// String implements fmt.Stringer.
func (b BadgeType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BadgeType.
func (b BadgeType) IsValid() bool {
	for _, candidate := range validBadgeTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBadgeType converts raw input into a BadgeType.
func ParseBadgeType(value string) (BadgeType, error) {
	for _, candidate := range validBadgeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid badge type %q", value)
}
