package domain

import "time"

// Tenant represents an agency workspace. All business data is
// partitioned by the tenant's canonical ID; the slug is a mutable,
// human-readable alternate key used in URLs.
type Tenant struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
