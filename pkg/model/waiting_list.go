package model

import "time"

const (
	WaitingPending   = "PENDING"
	WaitingNotified  = "NOTIFIED"
	WaitingFulfilled = "FULFILLED"
	WaitingDeleted   = "DELETED"
)

// WaitingListEntry records non-binding interest in a date (and optionally a
// court and time window). It never takes part in availability decisions;
// the notifier matches entries against freed slots and marks them NOTIFIED.
type WaitingListEntry struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClubID    string     `json:"club_id" bson:"club_id" validate:"required,mongodb"`
	Date      string     `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	CourtID   string     `json:"court_id,omitempty" bson:"court_id,omitempty" validate:"omitempty,mongodb"`
	StartTime *time.Time `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Name      string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone     string     `json:"phone" bson:"phone" validate:"required,e164"`
	Notes     string     `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=500"`
	Status    string     `json:"status" bson:"status" validate:"required,oneof=PENDING NOTIFIED FULFILLED DELETED"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}
