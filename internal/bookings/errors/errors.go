package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrEntryNotFound = errors.New("waiting list entry not found")

	ErrOutsideOpeningHours = errors.New("requested slot is outside opening hours")

	ErrNotCancelable = errors.New("booking cannot be canceled in its current status")

	ErrNotNoShowable = errors.New("only an active booking can be marked as a no-show")

	ErrNotNoShow = errors.New("booking is not marked as a no-show")
)
