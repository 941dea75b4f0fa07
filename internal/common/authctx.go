package common

import "context"

type ctxKey string

const identityKey ctxKey = "auth/identity"

// Identity is the verified caller identity attached to a request context.
// Role carries the raw role claim; interpretation lives in the auth package.
type Identity struct {
	UserID string
	Role   string
}

// WithIdentity stores the verified caller identity on the provided context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the caller identity from the context if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
