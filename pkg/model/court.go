package model

import "time"

// Court is a bookable resource. Courts are never hard-deleted; removing one
// from rotation flips Active to false so historical bookings keep their
// reference.
type Court struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClubID      string    `json:"club_id" bson:"club_id" validate:"required,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=50"`
	Sport       string    `json:"sport" bson:"sport" validate:"required,oneof=padel tennis futbol squash"`
	Surface     string    `json:"surface,omitempty" bson:"surface" validate:"omitempty,max=50"`
	DurationMin *int      `json:"duration_min,omitempty" bson:"duration_min" validate:"omitempty,min=15,max=240"`
	Active      bool      `json:"active" bson:"active"`
	SortOrder   int       `json:"sort_order" bson:"sort_order" validate:"omitempty,min=0"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CourtUpdate struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Sport       string `json:"sport,omitempty" validate:"omitempty,oneof=padel tennis futbol squash"`
	Surface     string `json:"surface,omitempty" validate:"omitempty,max=50"`
	DurationMin *int   `json:"duration_min,omitempty" validate:"omitempty,min=15,max=240"`
	SortOrder   *int   `json:"sort_order,omitempty" validate:"omitempty,min=0"`
}
