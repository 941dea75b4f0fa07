package billing

import (
	"math"
	"testing"
)

func TestComputeEmptyCart(t *testing.T) {
	if got := Compute(nil, nil); got != (BillResult{}) {
		t.Fatalf("expected all-zero bill for nil items, got %+v", got)
	}
	if got := Compute([]LineItem{}, nil); got != (BillResult{}) {
		t.Fatalf("expected all-zero bill for empty items, got %+v", got)
	}
}

func TestComputeNoCoupon(t *testing.T) {
	items := []LineItem{{Price: 100, Qty: 2}, {Price: 50, Qty: 1}}
	got := Compute(items, nil)
	if got.Subtotal != 250 {
		t.Fatalf("expected subtotal 250, got %v", got.Subtotal)
	}
	if got.ServiceCharge != 6 {
		t.Fatalf("expected service charge 6, got %v", got.ServiceCharge)
	}
	if got.Tax != 12.5 {
		t.Fatalf("expected tax 12.5, got %v", got.Tax)
	}
	if got.Discount != 0 {
		t.Fatalf("expected zero discount, got %v", got.Discount)
	}
	if got.Total != 268.5 {
		t.Fatalf("expected total 268.5, got %v", got.Total)
	}
}

func TestComputeCappedPercentage(t *testing.T) {
	items := []LineItem{{Price: 100, Qty: 2}, {Price: 50, Qty: 1}}
	cap := 20.0
	rule := &DiscountRule{Type: DiscountPercentage, Value: 10, MaxDiscount: &cap}
	got := Compute(items, rule)
	if got.Discount != 20 {
		t.Fatalf("expected discount capped at 20, got %v", got.Discount)
	}
	if got.Total != 248.5 {
		t.Fatalf("expected total 248.5, got %v", got.Total)
	}
}

func TestComputeOversizedDiscountClampsTotal(t *testing.T) {
	items := []LineItem{{Price: 10, Qty: 1}}
	rule := &DiscountRule{Type: DiscountFixed, Value: 1000}
	got := Compute(items, rule)
	if got.Total != 0 {
		t.Fatalf("expected total clamped to 0, got %v", got.Total)
	}
	if got.Discount != 1000 {
		t.Fatalf("expected full fixed discount reported, got %v", got.Discount)
	}
}

func TestComputeMalformedItemsDegradeToZero(t *testing.T) {
	items := []LineItem{
		{Price: -5, Qty: 3},
		{Price: 40, Qty: -2},
		{},
		{Price: 25, Qty: 2},
	}
	got := Compute(items, nil)
	if got.Subtotal != 50 {
		t.Fatalf("expected negative/missing fields to contribute nothing, subtotal %v", got.Subtotal)
	}
	// negative quantities are zeroed before the service charge sum
	if got.ServiceCharge != 10 {
		t.Fatalf("expected service charge 10 for qty 3+2, got %v", got.ServiceCharge)
	}
}

func TestComputeTaxOnSubtotalOnly(t *testing.T) {
	items := []LineItem{{Price: 200, Qty: 5}}
	got := Compute(items, nil)
	want := 1000 * GSTRate
	if math.Abs(got.Tax-want) > 1e-9 {
		t.Fatalf("expected tax %v on subtotal only, got %v", want, got.Tax)
	}
}
