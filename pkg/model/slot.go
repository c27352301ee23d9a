package model

import "time"

// Slot is one bookable candidate in a court's day grid: the interval, the
// availability decision, and the resolved price. Grids are recomputed from
// the current booking snapshot on every request; a Slot is never cached.
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
	Price     int64     `json:"price"`
}
