package domain

import "time"

// Player is a scouted footballer tracked by an agency.
type Player struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Position    string     `json:"position,omitempty"`
	Club        string     `json:"club,omitempty"`
	Nationality string     `json:"nationality,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Rating      int        `json:"rating,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PlayerFilter narrows player list queries.
type PlayerFilter struct {
	Position string
	Club     string
	Search   string
}
