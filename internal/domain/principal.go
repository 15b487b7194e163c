package domain

// Principal is an authenticated actor. Principals are owned entirely by
// the external identity provider; this service only ever reads them.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}
