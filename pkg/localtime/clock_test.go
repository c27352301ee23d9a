package localtime

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 8*60 + 30, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"8:30", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTime) {
					t.Errorf("expected ErrInvalidTime, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestClock_String(t *testing.T) {
	c, _ := ParseClock("09:05")
	if c.String() != "09:05" {
		t.Errorf("expected 09:05, got %s", c.String())
	}
}

func TestWithinWindow(t *testing.T) {
	parse := func(s string) Clock {
		c, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		return c
	}

	tests := []struct {
		name        string
		c           string
		open, close string
		want        bool
	}{
		{"inside same-day window", "10:00", "08:00", "23:00", true},
		{"at open", "08:00", "08:00", "23:00", true},
		{"at close", "23:00", "08:00", "23:00", false},
		{"before open", "07:59", "08:00", "23:00", false},
		{"wrap, before midnight", "23:00", "18:00", "02:00", true},
		{"wrap, after midnight", "01:30", "18:00", "02:00", true},
		{"wrap, at close", "02:00", "18:00", "02:00", false},
		{"wrap, daytime gap", "12:00", "18:00", "02:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinWindow(parse(tt.c), parse(tt.open), parse(tt.close))
			if got != tt.want {
				t.Errorf("WithinWindow(%s in %s-%s) = %v, want %v", tt.c, tt.open, tt.close, got, tt.want)
			}
		})
	}
}
