package model

import "time"

// ClubScheduleConfig is the per-tenant scheduling configuration. It is
// mutated by club administrators and read-only to the scheduling engine.
//
// OpenTime and CloseTime are wall-clock "HH:MM" strings in the club's
// time zone. A CloseTime at or before OpenTime means the club closes past
// midnight on the following calendar day.
type ClubScheduleConfig struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Slug            string    `json:"slug" bson:"slug" validate:"required,min=2,max=50"`
	OpenTime        string    `json:"open_time" bson:"open_time" validate:"required,valid_clock"`
	CloseTime       string    `json:"close_time" bson:"close_time" validate:"required,valid_clock"`
	SlotDurationMin int       `json:"slot_duration_min" bson:"slot_duration_min" validate:"required,min=15,max=240"`
	TimeZone        string    `json:"time_zone" bson:"time_zone" validate:"required,timezone"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ClubScheduleConfigUpdate struct {
	Name            string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	OpenTime        string `json:"open_time,omitempty" validate:"omitempty,valid_clock"`
	CloseTime       string `json:"close_time,omitempty" validate:"omitempty,valid_clock"`
	SlotDurationMin *int   `json:"slot_duration_min,omitempty" validate:"omitempty,min=15,max=240"`
	TimeZone        string `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}
