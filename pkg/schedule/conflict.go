// Package schedule is the court-booking decision core: slot generation,
// conflict detection and price resolution. Everything here is a pure
// function of its arguments: callers supply a consistent snapshot of
// bookings, the club config and the rule set, and persist the decisions
// themselves. The write-side re-runs CheckConflict under a slot lock inside
// the storage transaction; see internal/bookings/service.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"courtops/pkg/model"
)

// ErrSlotUnavailable reports a requested interval clashing with an existing
// non-canceled booking. Callers treat it as input validation, not a fault.
var ErrSlotUnavailable = errors.New("slot unavailable")

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports half-open interval overlap. Back-to-back intervals,
// where one ends exactly when the other starts, do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// HasConflict reports whether the candidate interval overlaps any blocking
// booking in the snapshot. Only PENDING and CONFIRMED bookings block;
// CANCELED and NO_SHOW never do. The check is true interval arithmetic:
// a 90-minute booking on a 30-minute grid blocks every start it covers,
// not just its own grid label.
func HasConflict(candidate Interval, existing []*model.Booking) bool {
	for _, b := range existing {
		if !b.Blocks() {
			continue
		}
		if candidate.Overlaps(Interval{Start: b.StartTime, End: b.EndTime}) {
			return true
		}
	}
	return false
}

// CheckConflict returns ErrSlotUnavailable (wrapped with the clashing
// interval) if the candidate cannot be created.
func CheckConflict(candidate Interval, existing []*model.Booking) error {
	for _, b := range existing {
		if !b.Blocks() {
			continue
		}
		taken := Interval{Start: b.StartTime, End: b.EndTime}
		if candidate.Overlaps(taken) {
			return fmt.Errorf("%w: %s clashes with booking %s %s", ErrSlotUnavailable, candidate, b.ID, taken)
		}
	}
	return nil
}
