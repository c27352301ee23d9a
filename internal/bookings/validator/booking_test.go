package validator

import (
	"testing"
	"time"

	"courtops/pkg/logger"
	"courtops/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	}))
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ClubID:      "507f1f77bcf86cd799439011",
		CourtID:     "507f1f77bcf86cd799439012",
		ClientName:  "Marta Diaz",
		ClientPhone: "+541123456789",
		Date:        "2027-03-15",
		StartTime:   "09:30",
	}
}

func TestValidateCreateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateBookingRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateBookingRequest) {}, false},
		{"with payments", func(r *CreateBookingRequest) {
			r.Payments = []model.Payment{{Method: "CASH", Amount: 400000}}
		}, false},
		{"missing club", func(r *CreateBookingRequest) { r.ClubID = "" }, true},
		{"bad club id", func(r *CreateBookingRequest) { r.ClubID = "not-an-oid" }, true},
		{"short name", func(r *CreateBookingRequest) { r.ClientName = "M" }, true},
		{"bad date layout", func(r *CreateBookingRequest) { r.Date = "15/03/2027" }, true},
		{"bad clock", func(r *CreateBookingRequest) { r.StartTime = "9:30" }, true},
		{"clock out of range", func(r *CreateBookingRequest) { r.StartTime = "24:00" }, true},
		{"bad payment method", func(r *CreateBookingRequest) {
			r.Payments = []model.Payment{{Method: "CRYPTO", Amount: 100}}
		}, true},
		{"zero payment amount", func(r *CreateBookingRequest) {
			r.Payments = []model.Payment{{Method: "CASH", Amount: 0}}
		}, true},
		{"negative recurring weeks", func(r *CreateBookingRequest) { r.RecurringWeeks = -1 }, true},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := v.ValidateCreateRequest(&req)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateBooking_EndAfterStart(t *testing.T) {
	v := newTestValidator()
	start := time.Date(2027, 3, 15, 12, 30, 0, 0, time.UTC)

	booking := &model.Booking{
		ClubID:        "507f1f77bcf86cd799439011",
		CourtID:       "507f1f77bcf86cd799439012",
		ClientName:    "Marta Diaz",
		ClientPhone:   "+541123456789",
		StartTime:     start,
		EndTime:       start.Add(90 * time.Minute),
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentUnpaid,
		Price:         800000,
	}
	if err := v.Validate(booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking.EndTime = start
	if err := v.Validate(booking); err == nil {
		t.Error("expected error for zero-length interval")
	}
}

func TestValidateWaitingListEntry(t *testing.T) {
	v := newTestValidator()
	start := time.Date(2027, 3, 15, 18, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	entry := &model.WaitingListEntry{
		ClubID: "507f1f77bcf86cd799439011",
		Date:   "2027-03-15",
		Name:   "Pedro Alvarez",
		Phone:  "+541123456789",
		Status: model.WaitingPending,
	}
	if err := v.ValidateWaitingListEntry(entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry.StartTime = &start
	entry.EndTime = &end
	if err := v.ValidateWaitingListEntry(entry); err != nil {
		t.Fatalf("unexpected error with window: %v", err)
	}

	entry.EndTime = &start
	if err := v.ValidateWaitingListEntry(entry); err == nil {
		t.Error("expected error for inverted window")
	}

	entry.StartTime = nil
	entry.EndTime = nil
	entry.Status = "WAITING"
	if err := v.ValidateWaitingListEntry(entry); err == nil {
		t.Error("expected error for unknown status")
	}
}
