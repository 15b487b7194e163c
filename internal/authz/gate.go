package authz

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Request is the slice of an inbound operation the gate reads: a way to
// authenticate the caller and a way to read the tenant parameter.
// Transport adapters (HTTP middleware, test fakes) implement it.
type Request interface {
	// Principal authenticates the caller against the external identity
	// provider. A missing or invalid credential is ErrNoPrincipal.
	Principal(ctx context.Context) (string, error)

	// TenantParam returns the operation's tenant token, or "" when the
	// caller supplied none.
	TenantParam() string
}

// Grant is the gate's success result. TenantID is always canonical;
// TenantToken preserves what the caller originally sent, if anything.
type Grant struct {
	PrincipalID string
	TenantID    string
	TenantToken string
}

// Gate is the single entry point every tenant-scoped operation passes
// through before touching tenant data. It runs a strict linear
// sequence: authenticate, extract the tenant token, resolve it,
// validate membership. No step is skipped, reordered, or retried, and
// nothing here ever mutates tenant or membership data.
type Gate struct {
	resolver *Resolver
	members  *Validator
	store    MembershipStore
	logger   *zap.Logger
}

// NewGate wires the resolver and validator. store is consulted only for
// the no-token membership fallback.
func NewGate(resolver *Resolver, members *Validator, store MembershipStore, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{resolver: resolver, members: members, store: store, logger: logger}
}

// Require authorizes req and returns the canonical tenant grant, or a
// classified *Error. Failures come back as values; transport-level
// translation is the caller's job.
func (g *Gate) Require(ctx context.Context, req Request) (Grant, error) {
	principalID, err := req.Principal(ctx)
	if err != nil {
		if errors.Is(err, ErrNoPrincipal) {
			return Grant{}, newError(ClassUnauthenticated, "authentication required", err)
		}
		return Grant{}, newError(ClassInternal, "authenticate principal", err)
	}

	token := strings.TrimSpace(req.TenantParam())

	var tenantID string
	if token == "" {
		// Fall back to the first tenant the principal belongs to. The
		// ordering is whatever the store returns; with multiple
		// memberships and no explicit token the choice is arbitrary.
		memberships, err := g.store.ListByPrincipal(ctx, principalID)
		if err != nil {
			return Grant{}, newError(ClassInternal, "list memberships", err)
		}
		if len(memberships) == 0 {
			return Grant{}, newError(ClassForbidden, "no tenant memberships", nil)
		}
		// Membership rows carry canonical IDs, so the slug resolution
		// step has nothing to do on this path.
		tenantID = memberships[0].TenantID
	} else {
		tenantID, err = g.resolver.Resolve(ctx, token)
		if err != nil {
			return Grant{}, err
		}
	}

	hasAccess, err := g.members.HasAccess(ctx, principalID, tenantID)
	if err != nil {
		return Grant{}, err
	}
	if !hasAccess {
		g.logger.Debug("tenant access denied",
			zap.String("principal_id", principalID),
			zap.String("tenant_id", tenantID),
		)
		return Grant{}, newError(ClassForbidden, "access denied to this tenant", nil)
	}

	return Grant{PrincipalID: principalID, TenantID: tenantID, TenantToken: token}, nil
}
