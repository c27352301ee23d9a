package model

import "time"

// Booking lifecycle statuses. Only Pending and Confirmed bookings block a
// slot; Canceled and NoShow are retained for audit but free the interval.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCanceled  = "CANCELED"
	StatusNoShow    = "NO_SHOW"
)

const (
	PaymentUnpaid  = "UNPAID"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
	PaymentSplit   = "SPLIT"
)

// Booking is an interval reservation on a court. StartTime and EndTime are
// UTC instants; day bucketing and display always go through the club's
// time zone (pkg/localtime), never the host zone.
//
// Invariant: per court, no two bookings with status PENDING or CONFIRMED
// may have overlapping [StartTime, EndTime) intervals.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClubID        string    `json:"club_id" bson:"club_id" validate:"required,mongodb"`
	CourtID       string    `json:"court_id" bson:"court_id" validate:"required,mongodb"`
	ClientName    string    `json:"client_name" bson:"client_name" validate:"required,min=2,max=100"`
	ClientPhone   string    `json:"client_phone" bson:"client_phone" validate:"required,e164"`
	StartTime     time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED CANCELED NO_SHOW"`
	PaymentStatus string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=UNPAID PARTIAL PAID SPLIT"`
	Price         int64     `json:"price" bson:"price" validate:"min=0"`
	RecurringID   string    `json:"recurring_id,omitempty" bson:"recurring_id,omitempty" validate:"omitempty,uuid4"`
	Notes         string    `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=500"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Blocks reports whether the booking occupies its interval for conflict
// purposes.
func (b *Booking) Blocks() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Payment is a partial payment recorded against a booking at creation time.
type Payment struct {
	Method string `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Amount int64  `json:"amount" validate:"required,min=1"`
}
