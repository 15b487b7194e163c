package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/pitchline/pitchline-api/internal/domain"
)

// JWTProvider verifies HS256 access tokens minted by the identity
// platform with a shared signing secret. The token subject is the
// principal ID.
type JWTProvider struct {
	secret []byte
	issuer string
}

var _ Provider = (*JWTProvider)(nil)

// NewJWTProvider creates a verifier for tokens signed with secret.
// issuer, when non-empty, is enforced against the iss claim.
func NewJWTProvider(secret []byte, issuer string) *JWTProvider {
	return &JWTProvider{secret: secret, issuer: issuer}
}

type profileClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Authenticate parses and verifies token, returning the principal its
// claims describe.
func (p *JWTProvider) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, ErrNoCredential
	}

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("parse token: %w", ErrInvalidCredential)
	}

	var claims jwt.Claims
	var profile profileClaims
	if err := parsed.Claims(p.secret, &claims, &profile); err != nil {
		return domain.Principal{}, fmt.Errorf("verify token: %w", ErrInvalidCredential)
	}

	expected := jwt.Expected{Time: time.Now()}
	if p.issuer != "" {
		expected.Issuer = p.issuer
	}
	if err := claims.Validate(expected); err != nil {
		return domain.Principal{}, fmt.Errorf("validate claims: %w", ErrInvalidCredential)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return domain.Principal{}, fmt.Errorf("missing subject: %w", ErrInvalidCredential)
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: profile.Email,
		Name:  profile.Name,
	}, nil
}
