package utils

import (
	"time"

	"github.com/rs/xid"
)

// NewID returns a collision-free, lexicographically sortable identifier.
// Sortability keeps insertion order recoverable from the id alone.
func NewID() string {
	return xid.New().String()
}

// Now returns the current UTC time. All persisted timestamps go through
// here so they compare consistently across backends.
func Now() time.Time {
	return time.Now().UTC()
}
