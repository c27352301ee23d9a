package schedule

import (
	"time"

	"courtops/pkg/localtime"
	"courtops/pkg/model"
)

// EffectiveDuration is the court's slot length: the per-court override when
// set, else the club default. Mixed-sport clubs run 60-minute and 90-minute
// courts side by side this way.
func EffectiveDuration(court *model.Court, cfg *model.ClubScheduleConfig) time.Duration {
	if court != nil && court.DurationMin != nil && *court.DurationMin > 0 {
		return time.Duration(*court.DurationMin) * time.Minute
	}
	return time.Duration(cfg.SlotDurationMin) * time.Minute
}

// DayWindow returns the club's operating interval for a local calendar day.
// A close time at or before the open time belongs to the next calendar day,
// so a 14:00–00:30 club yields a window whose end is 00:30 tomorrow.
func DayWindow(cfg *model.ClubScheduleConfig, day localtime.Date, loc *time.Location) (Interval, error) {
	open, err := localtime.ParseClock(cfg.OpenTime)
	if err != nil {
		return Interval{}, err
	}
	close, err := localtime.ParseClock(cfg.CloseTime)
	if err != nil {
		return Interval{}, err
	}

	start, err := localtime.BuildInstant(loc, day, open.Hour(), open.Minute())
	if err != nil {
		return Interval{}, err
	}

	closeDay := day
	if close <= open {
		closeDay = day.AddDays(1)
	}
	end, err := localtime.BuildInstant(loc, closeDay, close.Hour(), close.Minute())
	if err != nil {
		return Interval{}, err
	}

	return Interval{Start: start, End: end}, nil
}

// StartTimes generates the ordered slot starts for a court and local day:
// from opening time, stepping by the effective duration, keeping every
// start whose slot still ends by closing time. The sequence is finite and
// recomputed on every call so it always reflects the caller's snapshot.
func StartTimes(cfg *model.ClubScheduleConfig, court *model.Court, day localtime.Date, loc *time.Location) ([]time.Time, error) {
	window, err := DayWindow(cfg, day, loc)
	if err != nil {
		return nil, err
	}
	step := EffectiveDuration(court, cfg)

	var starts []time.Time
	for t := window.Start; !t.Add(step).After(window.End); t = t.Add(step) {
		starts = append(starts, t)
	}
	return starts, nil
}

// BuildDayGrid assembles the bookable view of one court and day: each
// slot start annotated with availability against the booking snapshot and
// with its resolved price. Slots that cross midnight are priced by the
// wall clock of their own start instant.
func BuildDayGrid(
	cfg *model.ClubScheduleConfig,
	court *model.Court,
	day localtime.Date,
	loc *time.Location,
	bookings []*model.Booking,
	rules []*model.PriceRule,
	isMember bool,
) ([]model.Slot, error) {
	starts, err := StartTimes(cfg, court, day, loc)
	if err != nil {
		return nil, err
	}
	step := EffectiveDuration(court, cfg)

	slots := make([]model.Slot, 0, len(starts))
	for _, start := range starts {
		end := start.Add(step)
		candidate := Interval{Start: start, End: end}

		lc := localtime.Components(start, loc)
		price, err := ResolvePrice(rules, lc.Date.Weekday(), lc.Hour*60+lc.Minute, isMember)
		if err != nil {
			return nil, err
		}

		slots = append(slots, model.Slot{
			StartTime: start,
			EndTime:   end,
			Available: !HasConflict(candidate, bookings),
			Price:     price,
		})
	}
	return slots, nil
}
