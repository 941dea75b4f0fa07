package billing

import "strings"

// DiscountType enumerates the supported discount kinds.
type DiscountType string

const (
	// DiscountPercentage reduces the amount by a percentage of itself.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed reduces the amount by a flat value.
	DiscountFixed DiscountType = "fixed"
)

// ParseDiscountType normalises a raw discount kind string. "flat" is accepted
// as an alias for fixed.
func ParseDiscountType(raw string) (DiscountType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "percentage", "percent":
		return DiscountPercentage, true
	case "fixed", "flat":
		return DiscountFixed, true
	default:
		return "", false
	}
}

// DiscountRule is the resolved discount applied to a bill.
type DiscountRule struct {
	Type        DiscountType
	Value       float64
	MaxDiscount *float64
}

// AppliedDiscount is the projection of a rule onto a concrete amount.
type AppliedDiscount struct {
	Type        DiscountType `json:"type"`
	Amount      float64      `json:"value"`
	FinalAmount float64      `json:"finalAmount"`
}

// Project computes the discount a rule yields against the given amount.
// This is the single implementation of the percentage/fixed branch; both the
// bill calculator and the coupon validation endpoint go through it.
func Project(rule DiscountRule, amount float64) AppliedDiscount {
	var discount float64
	switch rule.Type {
	case DiscountPercentage:
		discount = amount * rule.Value / 100
	case DiscountFixed:
		discount = rule.Value
	}
	if discount < 0 {
		discount = 0
	}
	if rule.MaxDiscount != nil && discount > *rule.MaxDiscount {
		discount = *rule.MaxDiscount
	}
	final := amount - discount
	if final < 0 {
		final = 0
	}
	return AppliedDiscount{Type: rule.Type, Amount: discount, FinalAmount: final}
}
