package errors

import "errors"

var (
	ErrNotFound = errors.New("club not found")

	ErrCourtNotFound = errors.New("court not found")

	ErrPriceRuleNotFound = errors.New("price rule not found")

	ErrInvalidID = errors.New("invalid ID format")

	ErrSlugTaken = errors.New("club slug already in use")

	ErrLastPriceRule = errors.New("cannot delete the last price rule of a club")
)
