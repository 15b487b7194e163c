package domain

import "time"

// Calendar event kinds.
const (
	EventKindTrial   = "TRIAL"
	EventKindMatch   = "MATCH"
	EventKindMeeting = "MEETING"
	EventKindOther   = "OTHER"
)

// CalendarEvent is an entry in a tenant's calendar. Events mirroring a
// trial carry the trial's ID and are managed by the trial workflow, not
// directly by calendar endpoints.
type CalendarEvent struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	TrialID   string    `json:"trialId,omitempty"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EventFilter narrows calendar queries to a window and kind.
type EventFilter struct {
	Kind string
	From time.Time
	To   time.Time
}
