package domain

import "time"

// Scouting request statuses.
const (
	RequestStatusOpen      = "OPEN"
	RequestStatusInProcess = "IN_PROCESS"
	RequestStatusCompleted = "COMPLETED"
	RequestStatusCancelled = "CANCELLED"
)

// ScoutingRequest captures a club's ask for a player profile.
type ScoutingRequest struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Title     string    `json:"title"`
	Club      string    `json:"club,omitempty"`
	Position  string    `json:"position,omitempty"`
	Status    string    `json:"status"`
	MinAge    int       `json:"minAge,omitempty"`
	MaxAge    int       `json:"maxAge,omitempty"`
	Budget    int64     `json:"budget,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestFilter narrows scouting request list queries.
type RequestFilter struct {
	Status   string
	Position string
	Search   string
}
