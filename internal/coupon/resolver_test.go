package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
)

// stubStore mimics the Mongo query contract: it only ever yields rules that
// are active and unexpired at the lookup instant.
type stubStore struct {
	rules map[string]Rule
	err   error
}

func (s *stubStore) FindActive(ctx context.Context, code string, at time.Time) (Rule, error) {
	if s.err != nil {
		return Rule{}, s.err
	}
	rule, ok := s.rules[code]
	if !ok || !rule.Usable(at) {
		return Rule{}, ErrNotFound
	}
	return rule, nil
}

func activeRule(code string) Rule {
	return Rule{
		Code:          code,
		DiscountType:  billing.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		ExpiryDate:    time.Now().Add(24 * time.Hour),
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	store := &stubStore{rules: map[string]Rule{"SAVE10": activeRule("SAVE10")}}
	resolver := &Resolver{Store: store}

	lower, err := resolver.Resolve(context.Background(), "save10")
	if err != nil {
		t.Fatalf("resolve lower-case: %v", err)
	}
	upper, err := resolver.Resolve(context.Background(), "SAVE10")
	if err != nil {
		t.Fatalf("resolve upper-case: %v", err)
	}
	if lower.Code != upper.Code {
		t.Fatalf("expected same rule for both spellings, got %q and %q", lower.Code, upper.Code)
	}
}

func TestResolveExpiredNeverMatches(t *testing.T) {
	rule := activeRule("EXPIRED1")
	rule.ExpiryDate = time.Now().Add(-24 * time.Hour)
	store := &stubStore{rules: map[string]Rule{"EXPIRED1": rule}}
	resolver := &Resolver{Store: store}

	if _, err := resolver.Resolve(context.Background(), "EXPIRED1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired coupon, got %v", err)
	}
}

func TestResolveInactiveNeverMatches(t *testing.T) {
	rule := activeRule("PAUSED")
	rule.IsActive = false
	store := &stubStore{rules: map[string]Rule{"PAUSED": rule}}
	resolver := &Resolver{Store: store}

	if _, err := resolver.Resolve(context.Background(), "PAUSED"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive coupon, got %v", err)
	}
}

func TestResolveEmptyCode(t *testing.T) {
	resolver := &Resolver{Store: &stubStore{}}
	if _, err := resolver.Resolve(context.Background(), "   "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank code, got %v", err)
	}
}

func TestResolveSurfacesStoreFailures(t *testing.T) {
	storeErr := errors.New("connection reset")
	resolver := &Resolver{Store: &stubStore{err: storeErr}}
	_, err := resolver.Resolve(context.Background(), "SAVE10")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}
