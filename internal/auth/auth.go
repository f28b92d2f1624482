// Package auth is the role gate: it turns a bearer token into a Principal
// and refuses requests whose principal lacks the role an operation needs.
package auth

import (
	"context"
	"slices"
)

// Roles granted to callers.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the authenticated caller.
type Principal struct {
	Email string
	Name  string
	Roles []string
}

func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal adds p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal attached by Authenticate, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
