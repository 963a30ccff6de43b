package enums

import "fmt"

// OfferStatus captures the offer lifecycle enum.
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAvailable OfferStatus = "available"
	OfferStatusReserved  OfferStatus = "reserved"
	OfferStatusSoldOut   OfferStatus = "sold_out"
	OfferStatusExpired   OfferStatus = "expired"
)

var validOfferStatuses = []OfferStatus{
	OfferStatusPending,
	OfferStatusAvailable,
	OfferStatusReserved,
	OfferStatusSoldOut,
	OfferStatusExpired,
}

// String implements fmt.Stringer.
func (s OfferStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OfferStatus.
func (s OfferStatus) IsValid() bool {
	for _, candidate := range validOfferStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status cannot transition any further.
func (s OfferStatus) IsTerminal() bool {
	return s == OfferStatusSoldOut || s == OfferStatusExpired
}

// ParseOfferStatus converts raw input into an OfferStatus.
func ParseOfferStatus(value string) (OfferStatus, error) {
	for _, candidate := range validOfferStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer status %q", value)
}
