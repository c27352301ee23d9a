package schedule

import (
	"errors"
	"time"

	"courtops/pkg/localtime"
	"courtops/pkg/model"
)

// ErrNoPriceRule reports a slot no rule covers. Setup seeds a full-coverage
// fallback rule per club, so hitting this is a tenant configuration defect;
// callers log it as a data-integrity alert and never default the price.
var ErrNoPriceRule = errors.New("no price rule matches")

// ResolvePrice picks the applicable price for a local weekday and
// minute-of-day. Among rules whose day set and [start, end) window match,
// the highest priority wins; ties go to the narrowest window, then to the
// earliest created rule. A member discount, when the winning rule defines
// one, is a percentage of the base price applied once, rounded half-up to
// the minor currency unit.
func ResolvePrice(rules []*model.PriceRule, day time.Weekday, minuteOfDay int, isMember bool) (int64, error) {
	var (
		best      *model.PriceRule
		bestWidth int
	)

	for _, rule := range rules {
		width, ok := ruleMatch(rule, day, minuteOfDay)
		if !ok {
			continue
		}
		if best == nil ||
			rule.Priority > best.Priority ||
			(rule.Priority == best.Priority && width < bestWidth) ||
			(rule.Priority == best.Priority && width == bestWidth && rule.CreatedAt.Before(best.CreatedAt)) {
			best = rule
			bestWidth = width
		}
	}

	if best == nil {
		return 0, ErrNoPriceRule
	}

	price := best.Price
	if isMember && best.MemberDiscountPercent > 0 {
		price -= roundHalfUp(price*int64(best.MemberDiscountPercent), 100)
	}
	return price, nil
}

// ruleMatch reports whether the rule covers the given local weekday and
// minute, returning the window width in minutes for tie-breaking. An empty
// day list matches every day. Windows never wrap midnight.
func ruleMatch(rule *model.PriceRule, day time.Weekday, minuteOfDay int) (int, bool) {
	if len(rule.DaysOfWeek) > 0 {
		covered := false
		for _, d := range rule.DaysOfWeek {
			if d == int(day) {
				covered = true
				break
			}
		}
		if !covered {
			return 0, false
		}
	}

	start, err := localtime.ParseClock(rule.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := localtime.ParseClock(rule.EndTime)
	if err != nil {
		return 0, false
	}
	// The clock grammar has no 24:00, so an end of 23:59 means end of day.
	// Without this a rule meant as full coverage would miss a slot starting
	// at the last minute.
	endMinute := int(end)
	if endMinute == 23*60+59 {
		endMinute = 24 * 60
	}
	if minuteOfDay < int(start) || minuteOfDay >= endMinute {
		return 0, false
	}
	return endMinute - int(start), true
}

// roundHalfUp divides with standard half-up rounding for non-negative n.
func roundHalfUp(n, div int64) int64 {
	return (n + div/2) / div
}
