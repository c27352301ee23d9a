package model

import "time"

// PriceRule maps day-of-week and time-of-day windows to a price in minor
// currency units. Rules are matched on the club's local wall clock; the
// [StartTime, EndTime) window is half-open and does not wrap midnight, so a
// club with late hours declares one rule per side of midnight.
//
// DaysOfWeek uses 0=Sunday..6=Saturday; an empty list matches every day.
// Higher Priority wins among matches. Every club keeps at least one rule
// with full day/time coverage as a fallback, seeded at setup.
type PriceRule struct {
	ID                    string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClubID                string    `json:"club_id" bson:"club_id" validate:"required,mongodb"`
	Name                  string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	DaysOfWeek            []int     `json:"days_of_week,omitempty" bson:"days_of_week" validate:"omitempty,max=7,dive,min=0,max=6"`
	StartTime             string    `json:"start_time" bson:"start_time" validate:"required,valid_clock"`
	EndTime               string    `json:"end_time" bson:"end_time" validate:"required,valid_clock"`
	Price                 int64     `json:"price" bson:"price" validate:"min=0"`
	Priority              int       `json:"priority" bson:"priority" validate:"min=0,max=1000"`
	MemberDiscountPercent int       `json:"member_discount_percent,omitempty" bson:"member_discount_percent" validate:"min=0,max=100"`
	CreatedAt             time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PriceRuleUpdate struct {
	Name                  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	DaysOfWeek            *[]int `json:"days_of_week,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
	StartTime             string `json:"start_time,omitempty" validate:"omitempty,valid_clock"`
	EndTime               string `json:"end_time,omitempty" validate:"omitempty,valid_clock"`
	Price                 *int64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Priority              *int   `json:"priority,omitempty" validate:"omitempty,min=0,max=1000"`
	MemberDiscountPercent *int   `json:"member_discount_percent,omitempty" validate:"omitempty,min=0,max=100"`
}
