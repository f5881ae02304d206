package domain

import "errors"

// Token verification failure kinds. The HTTP boundary collapses all of them
// into a single generic unauthorized response so callers cannot tell which
// check failed.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedToken   = errors.New("token malformed")
	ErrUnknownPrincipal = errors.New("unknown principal")
)

// Principal is the identity resolved from a validated bearer token. It is
// immutable for the lifetime of a single request.
type Principal struct {
	Username string
	Roles    []Role
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
