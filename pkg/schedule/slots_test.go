package schedule

import (
	"testing"
	"time"

	"courtops/pkg/localtime"
	"courtops/pkg/model"
)

func testZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := localtime.LoadZone("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("LoadZone: %v", err)
	}
	return loc
}

func clubConfig(open, close string, slotMin int) *model.ClubScheduleConfig {
	return &model.ClubScheduleConfig{
		OpenTime:        open,
		CloseTime:       close,
		SlotDurationMin: slotMin,
		TimeZone:        "America/Argentina/Buenos_Aires",
	}
}

func localClocks(t *testing.T, starts []time.Time, loc *time.Location) []string {
	t.Helper()
	out := make([]string, len(starts))
	for i, s := range starts {
		c := localtime.Components(s, loc)
		out[i] = localtime.Clock(c.Hour*60 + c.Minute).String()
	}
	return out
}

func TestStartTimes_StandardDay(t *testing.T) {
	loc := testZone(t)
	cfg := clubConfig("08:00", "23:30", 90)
	day := localtime.Date{Year: 2026, Month: time.January, Day: 27}

	starts, err := StartTimes(cfg, nil, day, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"08:00", "09:30", "11:00", "12:30", "14:00", "15:30", "17:00", "18:30", "20:00", "21:30"}
	got := localClocks(t, starts, loc)

	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestStartTimes_CloseWrapsPastMidnight(t *testing.T) {
	loc := testZone(t)
	cfg := clubConfig("14:00", "00:30", 90)
	day := localtime.Date{Year: 2026, Month: time.January, Day: 27}

	starts, err := StartTimes(cfg, nil, day, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"14:00", "15:30", "17:00", "18:30", "20:00", "21:30", "23:00"}
	got := localClocks(t, starts, loc)
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(got), got)
	}

	// The final slot ends at 00:30 on the following local calendar day.
	last := starts[len(starts)-1].Add(EffectiveDuration(nil, cfg))
	lastEnd := localtime.Components(last, loc)
	if lastEnd.Date != day.AddDays(1) {
		t.Errorf("expected final slot to end on %v, got %v", day.AddDays(1), lastEnd.Date)
	}
	if lastEnd.Hour != 0 || lastEnd.Minute != 30 {
		t.Errorf("expected final slot to end at 00:30, got %02d:%02d", lastEnd.Hour, lastEnd.Minute)
	}
}

func TestEffectiveDuration_CourtOverride(t *testing.T) {
	cfg := clubConfig("08:00", "23:00", 90)
	sixty := 60

	if d := EffectiveDuration(nil, cfg); d != 90*time.Minute {
		t.Errorf("expected club default 90m, got %v", d)
	}
	if d := EffectiveDuration(&model.Court{DurationMin: &sixty}, cfg); d != 60*time.Minute {
		t.Errorf("expected court override 60m, got %v", d)
	}
	if d := EffectiveDuration(&model.Court{}, cfg); d != 90*time.Minute {
		t.Errorf("expected club default for court without override, got %v", d)
	}
}

func TestBuildDayGrid_AnnotatesAvailabilityAndPrice(t *testing.T) {
	loc := testZone(t)
	cfg := clubConfig("08:00", "14:00", 90)
	day := localtime.Date{Year: 2026, Month: time.January, Day: 27}

	rules := []*model.PriceRule{
		{Name: "base", StartTime: "00:00", EndTime: "23:59", Price: 12000, Priority: 0},
	}

	// Occupy 09:30-11:00.
	taken, err := localtime.BuildInstant(loc, day, 9, 30)
	if err != nil {
		t.Fatalf("BuildInstant: %v", err)
	}
	bookings := []*model.Booking{
		{ID: "b1", Status: model.StatusConfirmed, StartTime: taken, EndTime: taken.Add(90 * time.Minute)},
	}

	slots, err := BuildDayGrid(cfg, nil, day, loc, bookings, rules, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	wantAvailable := []bool{true, false, true, true}
	for i, s := range slots {
		if s.Available != wantAvailable[i] {
			t.Errorf("slot %d: expected available=%v, got %v", i, wantAvailable[i], s.Available)
		}
		if s.Price != 12000 {
			t.Errorf("slot %d: expected price 12000, got %d", i, s.Price)
		}
		if !s.EndTime.Equal(s.StartTime.Add(90 * time.Minute)) {
			t.Errorf("slot %d: end time does not match start + duration", i)
		}
	}
}

func TestBuildDayGrid_PricesPastMidnightByOwnWeekday(t *testing.T) {
	loc := testZone(t)
	cfg := clubConfig("18:00", "03:00", 90)
	// 2026-01-30 is a Friday; slots after midnight fall on Saturday.
	day := localtime.Date{Year: 2026, Month: time.January, Day: 30}

	rules := []*model.PriceRule{
		{Name: "base", StartTime: "00:00", EndTime: "23:59", Price: 10000, Priority: 0},
		{
			Name:       "saturday early",
			DaysOfWeek: []int{int(time.Saturday)},
			StartTime:  "00:00",
			EndTime:    "04:00",
			Price:      7000,
			Priority:   5,
		},
	}

	slots, err := BuildDayGrid(cfg, nil, day, loc, nil, rules, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 18:00 19:30 21:00 22:30 00:00 01:30
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for i, s := range slots {
		c := localtime.Components(s.StartTime, loc)
		if c.Date == day {
			if s.Price != 10000 {
				t.Errorf("slot %d (%02d:%02d Fri): expected 10000, got %d", i, c.Hour, c.Minute, s.Price)
			}
		} else {
			if s.Price != 7000 {
				t.Errorf("slot %d (%02d:%02d Sat): expected 7000, got %d", i, c.Hour, c.Minute, s.Price)
			}
		}
	}
}
