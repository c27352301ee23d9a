package localtime

import (
	"fmt"
	"regexp"
)

// Clock is a time of day as minutes since midnight. Club opening hours and
// price-rule windows are declared as "HH:MM" strings; comparing them as
// minutes keeps the cross-midnight cases explicit.
type Clock int

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

func ParseClock(s string) (Clock, error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q is not an HH:MM clock time", ErrInvalidTime, s)
	}
	var h, min int
	fmt.Sscanf(s, "%02d:%02d", &h, &min)
	return Clock(h*60 + min), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// WithinWindow reports whether c falls inside the half-open [open, close)
// window. A close at or before open means the window wraps past midnight:
// open 18:00 close 02:00 admits 23:00 and 01:30 but not 02:00.
func WithinWindow(c, open, close Clock) bool {
	if close <= open {
		return c >= open || c < close
	}
	return c >= open && c < close
}
