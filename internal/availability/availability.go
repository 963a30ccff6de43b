package availability

import (
	"fmt"
	"time"

	"github.com/mirafzalswe/foodsave/pkg/db/models"
	"github.com/mirafzalswe/foodsave/pkg/enums"
	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

// DateOnly truncates a timestamp to its UTC calendar date. All window
// comparisons are date-granular, not timestamp-granular.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsExpired reports whether an offer window has lapsed. An absent end date
// means the offer never expires by time alone; otherwise the offer is expired
// strictly after the end date, so it is still live on the end date itself.
func IsExpired(today time.Time, endDate *time.Time) bool {
	if endDate == nil {
		return false
	}
	return DateOnly(today).After(DateOnly(*endDate))
}

// IsOfferActive reports whether the offer is purchasable on the given day:
// flagged active, in available status, started, and not expired.
func IsOfferActive(offer models.Offer, today time.Time) bool {
	if !offer.IsActive {
		return false
	}
	if offer.Status != enums.OfferStatusAvailable {
		return false
	}
	if DateOnly(offer.StartDate).After(DateOnly(today)) {
		return false
	}
	return !IsExpired(today, offer.EndDate)
}

var legalTransitions = map[enums.OfferStatus][]enums.OfferStatus{
	enums.OfferStatusPending: {
		enums.OfferStatusAvailable,
		enums.OfferStatusExpired,
	},
	enums.OfferStatusAvailable: {
		enums.OfferStatusReserved,
		enums.OfferStatusSoldOut,
		enums.OfferStatusExpired,
	},
	enums.OfferStatusReserved: {
		enums.OfferStatusSoldOut,
		enums.OfferStatusExpired,
	},
}

// Transition validates a status move. It returns the status to persist and
// whether anything changed. Requests against an already-terminal status are
// no-ops; every other illegal move is a state conflict.
func Transition(current, target enums.OfferStatus) (enums.OfferStatus, bool, error) {
	if !target.IsValid() {
		return current, false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown offer status %q", target))
	}
	if current.IsTerminal() {
		return current, false, nil
	}
	if current == target {
		return current, false, nil
	}
	for _, allowed := range legalTransitions[current] {
		if allowed == target {
			return target, true, nil
		}
	}
	return current, false, pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("offer cannot move from %s to %s", current, target))
}
