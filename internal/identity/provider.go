package identity

import (
	"context"
	"errors"

	"github.com/pitchline/pitchline-api/internal/domain"
)

// Provider authenticates bearer credentials issued by the external
// identity platform. This service never stores credentials of its own;
// verification is the whole of its identity concern.
type Provider interface {
	// Authenticate verifies token and returns the principal it
	// identifies. ErrNoCredential for an empty token,
	// ErrInvalidCredential when verification fails.
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

var (
	ErrNoCredential      = errors.New("no credential supplied")
	ErrInvalidCredential = errors.New("invalid credential")
)
