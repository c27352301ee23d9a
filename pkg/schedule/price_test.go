package schedule

import (
	"errors"
	"testing"
	"time"

	"courtops/pkg/model"
)

func rule(name string, days []int, start, end string, price int64, priority int) *model.PriceRule {
	return &model.PriceRule{
		Name:       name,
		DaysOfWeek: days,
		StartTime:  start,
		EndTime:    end,
		Price:      price,
		Priority:   priority,
	}
}

func TestResolvePrice_PriorityWins(t *testing.T) {
	rules := []*model.PriceRule{
		rule("base", nil, "00:00", "23:59", 10000, 0),
		rule("peak", []int{int(time.Friday), int(time.Saturday), int(time.Sunday)}, "18:00", "23:00", 15000, 10),
	}

	tests := []struct {
		name   string
		day    time.Weekday
		minute int
		want   int64
	}{
		{"saturday evening hits peak", time.Saturday, 19 * 60, 15000},
		{"tuesday morning hits base", time.Tuesday, 10 * 60, 10000},
		{"friday at peak start", time.Friday, 18 * 60, 15000},
		{"friday at peak end falls back", time.Friday, 23 * 60, 10000},
		{"saturday before peak", time.Saturday, 17*60 + 59, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePrice(rules, tt.day, tt.minute, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolvePrice_EmptyDayListMatchesEveryDay(t *testing.T) {
	rules := []*model.PriceRule{rule("base", nil, "08:00", "23:00", 9000, 0)}

	for day := time.Sunday; day <= time.Saturday; day++ {
		got, err := ResolvePrice(rules, day, 12*60, false)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", day, err)
		}
		if got != 9000 {
			t.Errorf("%v: expected 9000, got %d", day, got)
		}
	}
}

func TestResolvePrice_NoMatchIsConfigurationError(t *testing.T) {
	rules := []*model.PriceRule{
		rule("mornings only", nil, "08:00", "12:00", 8000, 0),
	}

	_, err := ResolvePrice(rules, time.Monday, 14*60, false)
	if !errors.Is(err, ErrNoPriceRule) {
		t.Errorf("expected ErrNoPriceRule, got %v", err)
	}

	_, err = ResolvePrice(nil, time.Monday, 10*60, false)
	if !errors.Is(err, ErrNoPriceRule) {
		t.Errorf("expected ErrNoPriceRule for empty rule set, got %v", err)
	}
}

func TestResolvePrice_TieBreaksByNarrowestWindow(t *testing.T) {
	rules := []*model.PriceRule{
		rule("broad", nil, "08:00", "23:00", 10000, 5),
		rule("happy hour", nil, "14:00", "16:00", 6000, 5),
	}

	got, err := ResolvePrice(rules, time.Wednesday, 15*60, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6000 {
		t.Errorf("expected narrower window to win, got %d", got)
	}
}

func TestResolvePrice_TieBreaksByCreationOrder(t *testing.T) {
	older := rule("first", nil, "08:00", "12:00", 5000, 5)
	older.CreatedAt = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	newer := rule("second", nil, "08:00", "12:00", 7000, 5)
	newer.CreatedAt = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	// Listing order must not matter; creation time is the stable tiebreak.
	got, err := ResolvePrice([]*model.PriceRule{newer, older}, time.Monday, 9*60, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5000 {
		t.Errorf("expected the older rule to win, got %d", got)
	}
}

func TestResolvePrice_MemberDiscount(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		percent  int
		isMember bool
		want     int64
	}{
		{"20 percent of 10000", 10000, 20, true, 8000},
		{"non-member pays base", 10000, 20, false, 10000},
		{"no discount defined", 10000, 0, true, 10000},
		{"half-up rounding", 9999, 15, true, 8499}, // discount 1499.85 rounds to 1500
		{"full discount", 5000, 100, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rule("base", nil, "00:00", "23:59", tt.price, 0)
			r.MemberDiscountPercent = tt.percent

			got, err := ResolvePrice([]*model.PriceRule{r}, time.Monday, 10*60, tt.isMember)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolvePrice_DiscountComesFromWinningRule(t *testing.T) {
	base := rule("base", nil, "00:00", "23:59", 10000, 0)
	base.MemberDiscountPercent = 50
	peak := rule("peak", nil, "18:00", "23:00", 16000, 10)
	peak.MemberDiscountPercent = 10

	got, err := ResolvePrice([]*model.PriceRule{base, peak}, time.Friday, 19*60, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Peak wins; its own 10% applies, not the base rule's 50%.
	if got != 14400 {
		t.Errorf("expected 14400, got %d", got)
	}
}

func TestResolvePrice_EndOfDayWindowCoversLastMinute(t *testing.T) {
	rules := []*model.PriceRule{rule("base", nil, "00:00", "23:59", 10000, 0)}

	// A club opening at 23:59 produces a slot starting at minute 1439;
	// the full-day rule must still cover it.
	got, err := ResolvePrice(rules, time.Monday, 23*60+59, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10000 {
		t.Errorf("expected 10000, got %d", got)
	}

	// Windows ending before 23:59 stay half-open.
	rules = []*model.PriceRule{rule("evening", nil, "18:00", "23:00", 12000, 0)}
	if _, err := ResolvePrice(rules, time.Monday, 23*60, false); !errors.Is(err, ErrNoPriceRule) {
		t.Fatalf("expected ErrNoPriceRule at window end, got %v", err)
	}
}
