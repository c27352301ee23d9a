// Package localtime builds and decomposes instants in a club's fixed time
// zone. Bookings are stored as UTC instants but every day boundary, slot
// start and price window is reasoned about in the club's wall clock; all of
// that arithmetic routes through this package so the host zone never leaks
// into a scheduling decision.
package localtime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime reports out-of-range or non-existent wall-clock input.
var ErrInvalidTime = errors.New("invalid local time")

// Date is a calendar day with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidTime, s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday returns the day of week, 0=Sunday per time.Weekday.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// LoadZone resolves an IANA zone name. Configs validate the name with the
// `timezone` tag before it gets here, so a failure is a setup defect.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty time zone", ErrInvalidTime)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", ErrInvalidTime, name)
	}
	return loc, nil
}

// BuildInstant constructs the instant at the given wall-clock time in loc.
// It rejects out-of-range hour/minute and calendar days that do not exist
// (time.Date would silently normalize February 30th into March).
func BuildInstant(loc *time.Location, d Date, hour, minute int) (time.Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %02d:%02d is out of range", ErrInvalidTime, hour, minute)
	}
	t := time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return time.Time{}, fmt.Errorf("%w: %s does not exist", ErrInvalidTime, d)
	}
	return t, nil
}

// DateTime holds the wall-clock components of an instant in some zone.
type DateTime struct {
	Date
	Hour   int
	Minute int
}

// Components is the inverse of BuildInstant.
func Components(t time.Time, loc *time.Location) DateTime {
	lt := t.In(loc)
	return DateTime{
		Date:   Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()},
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
	}
}

// DateOf returns the local calendar day an instant falls on.
func DateOf(t time.Time, loc *time.Location) Date {
	return Components(t, loc).Date
}

// MinuteOfDay returns minutes since local midnight, for clock-window checks.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	c := Components(t, loc)
	return c.Hour*60 + c.Minute
}

// DayBounds returns the half-open [00:00, next day 00:00) window of a local
// calendar day. A late-night booking belongs to the local day it started
// on, not the UTC one.
func DayBounds(d Date, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	end := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc)
	return start, end
}
