package domain

import "time"

// Membership grants a principal access to a tenant. Access is defined
// purely by the row's existence; the role is carried for display and
// for permission layers built on top, but plays no part in the access
// decision itself.
type Membership struct {
	PrincipalID string    `json:"principalId"`
	TenantID    string    `json:"tenantId"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
