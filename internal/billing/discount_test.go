package billing

import "testing"

func TestProjectPercentage(t *testing.T) {
	applied := Project(DiscountRule{Type: DiscountPercentage, Value: 10}, 250)
	if applied.Amount != 25 {
		t.Fatalf("expected discount 25, got %v", applied.Amount)
	}
	if applied.FinalAmount != 225 {
		t.Fatalf("expected final amount 225, got %v", applied.FinalAmount)
	}
}

func TestProjectFixedCapped(t *testing.T) {
	cap := 15.0
	applied := Project(DiscountRule{Type: DiscountFixed, Value: 50, MaxDiscount: &cap}, 100)
	if applied.Amount != 15 {
		t.Fatalf("expected discount capped at 15, got %v", applied.Amount)
	}
	if applied.FinalAmount != 85 {
		t.Fatalf("expected final amount 85, got %v", applied.FinalAmount)
	}
}

func TestProjectFinalAmountNeverNegative(t *testing.T) {
	applied := Project(DiscountRule{Type: DiscountFixed, Value: 500}, 100)
	if applied.FinalAmount != 0 {
		t.Fatalf("expected final amount clamped to 0, got %v", applied.FinalAmount)
	}
}

func TestProjectNegativeValueYieldsZero(t *testing.T) {
	applied := Project(DiscountRule{Type: DiscountPercentage, Value: -10}, 100)
	if applied.Amount != 0 {
		t.Fatalf("expected zero discount for negative value, got %v", applied.Amount)
	}
}

func TestParseDiscountType(t *testing.T) {
	cases := map[string]DiscountType{
		"percentage": DiscountPercentage,
		"PERCENT":    DiscountPercentage,
		"fixed":      DiscountFixed,
		"flat":       DiscountFixed,
	}
	for raw, want := range cases {
		got, ok := ParseDiscountType(raw)
		if !ok || got != want {
			t.Fatalf("ParseDiscountType(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseDiscountType("bogo"); ok {
		t.Fatal("expected unknown discount type to be rejected")
	}
}
