package auth

import "errors"

var (
	// ErrUnauthenticated indicates the caller presented no verifiable identity.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrForbidden indicates the caller's role does not permit the operation.
	ErrForbidden = errors.New("auth: forbidden")
)

// Role is the closed set of caller roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a raw role claim onto the closed role set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}

// Claim is the verified identity payload derived from a caller's credential.
type Claim struct {
	UserID string
	Role   Role
}

// AuthorizeMenuWrite decides whether the claim may mutate menu data. It is a
// pure gate: each call is evaluated independently with no I/O.
func AuthorizeMenuWrite(claim *Claim) error {
	if claim == nil {
		return ErrUnauthenticated
	}
	if claim.Role != RoleAdmin && claim.Role != RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}
