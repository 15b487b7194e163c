package domain

import "time"

// Trial statuses.
const (
	TrialStatusScheduled = "SCHEDULED"
	TrialStatusCompleted = "COMPLETED"
	TrialStatusCancelled = "CANCELLED"
)

// Trial is a scheduled evaluation of a player, optionally linked to the
// scouting request that prompted it. A scheduled trial has exactly one
// calendar event mirroring its time and location.
type Trial struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	PlayerID    string    `json:"playerId"`
	RequestID   string    `json:"requestId,omitempty"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Location    string    `json:"location,omitempty"`
	Rating      int       `json:"rating,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TrialFilter narrows trial list queries.
type TrialFilter struct {
	Status   string
	PlayerID string
}
