package domain

import "time"

// AuditFields are embedded in every record that tracks who touched it last.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Actor identifies the current user for audit attribution. The engine does
// not authenticate; it receives the actor from the transport layer.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewAuditFields returns audit fields stamped with now and the given actor.
func NewAuditFields(actor Actor, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ID,
	}
}

// Touch updates the last-updated pair.
func (a *AuditFields) Touch(actor Actor, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor.ID
}
