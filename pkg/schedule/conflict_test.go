package schedule

import (
	"errors"
	"testing"
	"time"

	"courtops/pkg/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.January, 27, hour, min, 0, 0, time.UTC)
}

func booking(id, status string, start, end time.Time) *model.Booking {
	return &model.Booking{
		ID:        id,
		CourtID:   "65f000000000000000000001",
		Status:    status,
		StartTime: start,
		EndTime:   end,
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			"identical",
			Interval{at(14, 0), at(15, 30)},
			Interval{at(14, 0), at(15, 30)},
			true,
		},
		{
			"partial overlap",
			Interval{at(14, 0), at(15, 30)},
			Interval{at(15, 0), at(16, 30)},
			true,
		},
		{
			"containment",
			Interval{at(14, 0), at(17, 0)},
			Interval{at(15, 0), at(16, 0)},
			true,
		},
		{
			"back to back does not overlap",
			Interval{at(14, 0), at(15, 30)},
			Interval{at(15, 30), at(17, 0)},
			false,
		},
		{
			"disjoint",
			Interval{at(8, 0), at(9, 30)},
			Interval{at(20, 0), at(21, 30)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflict_IgnoresNonBlockingStatuses(t *testing.T) {
	candidate := Interval{at(14, 0), at(15, 30)}

	tests := []struct {
		status string
		want   bool
	}{
		{model.StatusPending, true},
		{model.StatusConfirmed, true},
		{model.StatusCanceled, false},
		{model.StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			existing := []*model.Booking{booking("b1", tt.status, at(14, 0), at(15, 30))}
			if got := HasConflict(candidate, existing); got != tt.want {
				t.Errorf("status %s: HasConflict = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// A 90-minute booking starting 14:00 must block a 14:30-15:30 request even
// though 14:30 looks free as a 30-minute grid label. Interval arithmetic,
// never slot-label equality.
func TestHasConflict_MixedDurationCourts(t *testing.T) {
	existing := []*model.Booking{
		booking("long", model.StatusConfirmed, at(14, 0), at(15, 30)),
	}

	candidate := Interval{at(14, 30), at(15, 30)}
	if !HasConflict(candidate, existing) {
		t.Fatal("expected 14:30-15:30 to conflict with the 14:00-15:30 booking")
	}

	err := CheckConflict(candidate, existing)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestCheckConflict_AllowsBackToBack(t *testing.T) {
	existing := []*model.Booking{
		booking("early", model.StatusConfirmed, at(14, 0), at(15, 30)),
	}

	if err := CheckConflict(Interval{at(15, 30), at(17, 0)}, existing); err != nil {
		t.Errorf("back-to-back booking should not conflict, got %v", err)
	}
	if err := CheckConflict(Interval{at(12, 30), at(14, 0)}, existing); err != nil {
		t.Errorf("booking ending at existing start should not conflict, got %v", err)
	}
}

// Property check: inserting candidates one by one with CheckConflict as the
// gate never produces an overlapping pair among accepted bookings.
func TestCheckConflict_AcceptedSetNeverOverlaps(t *testing.T) {
	var accepted []*model.Booking

	// Pseudo-random but deterministic interval soup on one court.
	starts := []int{480, 510, 540, 480, 600, 615, 700, 540, 660, 900, 915, 890}
	lengths := []int{90, 30, 60, 45, 120, 30, 60, 90, 45, 30, 90, 60}

	for i := range starts {
		s := at(0, 0).Add(time.Duration(starts[i]) * time.Minute)
		e := s.Add(time.Duration(lengths[i]) * time.Minute)
		candidate := Interval{s, e}

		if err := CheckConflict(candidate, accepted); err == nil {
			accepted = append(accepted, booking("", model.StatusConfirmed, s, e))
		}
	}

	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			a := Interval{accepted[i].StartTime, accepted[i].EndTime}
			b := Interval{accepted[j].StartTime, accepted[j].EndTime}
			if a.Overlaps(b) {
				t.Fatalf("accepted bookings overlap: %s and %s", a, b)
			}
		}
	}
}
