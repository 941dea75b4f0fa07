package coupon

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is the single outcome for codes that do not resolve. Expired,
// deactivated, and never-existing codes are deliberately indistinguishable.
var ErrNotFound = errors.New("coupon: not found")

// Store is the persisted-coupon lookup collaborator.
type Store interface {
	// FindActive returns the rule matching the canonical code that is active
	// and unexpired at the given instant, or ErrNotFound.
	FindActive(ctx context.Context, code string, at time.Time) (Rule, error)
}

// Resolver looks up coupon codes against the persisted store.
type Resolver struct {
	Store Store
	Now   func() time.Time
}

// Canonical upper-cases and trims a coupon code for case-insensitive matching.
func Canonical(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve determines whether the code names a currently usable coupon and
// returns its discount rule. The store read is the only suspension point.
func (r *Resolver) Resolve(ctx context.Context, code string) (Rule, error) {
	if r == nil || r.Store == nil {
		return Rule{}, errors.New("coupon: resolver not configured")
	}
	canonical := Canonical(code)
	if canonical == "" {
		return Rule{}, ErrNotFound
	}
	return r.Store.FindActive(ctx, canonical, r.now())
}

func (r *Resolver) now() time.Time {
	if r != nil && r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
