// Package events defines the booking event payloads published to Kafka.
// Messages are keyed by court ID so events for one court stay ordered.
package events

import "time"

const (
	SchemaVersion = "1"

	TypeBookingCreated  = "booking.created"
	TypeBookingCanceled = "booking.canceled"
	TypeBookingNoShow   = "booking.no_show"
)

// BookingEvent is the payload for every booking lifecycle event. Canceled
// and no-show events describe a freed interval; the notifier matches it
// against waiting list entries.
type BookingEvent struct {
	BookingID   string    `json:"booking_id"`
	ClubID      string    `json:"club_id"`
	CourtID     string    `json:"court_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Price       int64     `json:"price"`
	RecurringID string    `json:"recurring_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
