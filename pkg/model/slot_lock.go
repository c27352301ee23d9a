package model

import "time"

// SlotLock is an advisory lock held while a booking for a specific
// club/court/start instant is being created. Its _id is derived from those
// coordinates, so a duplicate-key insert means another request holds the
// slot. Locks expire via a Mongo TTL index as a crash guard.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
