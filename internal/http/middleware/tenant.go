package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/authz"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/identity"
)

const (
	grantKey     = "tenantGrant"
	principalKey = "principal"
)

// RequireTenant authorizes every request on the group through the
// gate: bearer token to principal, `tenant` query parameter to
// canonical tenant ID, membership check. Failures answer with the
// status the failure class maps to and never reach the handler.
func RequireTenant(gate *authz.Gate, provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		grant, err := gate.Require(c.Request.Context(), &gateRequest{c: c, identity: provider})
		if err != nil {
			class := authz.ClassOf(err)
			c.AbortWithStatusJSON(class.HTTPStatus(), gin.H{
				"error":             class.String(),
				"error_description": gateMessage(err),
			})
			return
		}

		c.Set(grantKey, grant)
		c.Next()
	}
}

// GetGrant returns the tenant grant attached by RequireTenant.
func GetGrant(c *gin.Context) (authz.Grant, bool) {
	value, ok := c.Get(grantKey)
	if !ok {
		return authz.Grant{}, false
	}
	grant, ok := value.(authz.Grant)
	return grant, ok
}

// GetPrincipal returns the authenticated principal, when the gate has
// run and authentication succeeded.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}

// gateRequest adapts a gin request to the gate's Request contract.
type gateRequest struct {
	c        *gin.Context
	identity identity.Provider
}

func (r *gateRequest) Principal(ctx context.Context) (string, error) {
	principal, err := r.identity.Authenticate(ctx, bearerToken(r.c))
	if err != nil {
		if errors.Is(err, identity.ErrNoCredential) || errors.Is(err, identity.ErrInvalidCredential) {
			return "", fmt.Errorf("%v: %w", err, authz.ErrNoPrincipal)
		}
		return "", err
	}
	r.c.Set(principalKey, principal)
	return principal.ID, nil
}

func (r *gateRequest) TenantParam() string {
	return r.c.Query("tenant")
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func gateMessage(err error) string {
	var authErr *authz.Error
	if errors.As(err, &authErr) {
		if authErr.Class == authz.ClassInternal {
			// Collaborator failures stay in the logs.
			return "Internal server error."
		}
		return authErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
