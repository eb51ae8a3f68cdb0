package models

import "time"

// CacheInvalidationPayload describes why cached search results must be
// flushed. DoctorID is informational; invalidation always clears the whole
// search keyspace.
type CacheInvalidationPayload struct {
	DoctorID    string    `json:"doctorId,omitempty"`
	Reason      string    `json:"reason"` // e.g. "doctor-updated", "slot-booked", "review-submitted"
	RequestedAt time.Time `json:"requestedAt"`
}
