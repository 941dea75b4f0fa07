package billing

const (
	// ServiceChargePerItem is the flat surcharge added per unit quantity.
	ServiceChargePerItem = 2.0
	// GSTRate is the tax rate applied to the subtotal only.
	GSTRate = 0.05
)

// LineItem describes one ordered unit type. Missing fields decode to zero
// and contribute nothing to the bill.
type LineItem struct {
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// BillResult aggregates the computed bill components. Total is never negative.
type BillResult struct {
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"serviceCharge"`
	Tax           float64 `json:"gst"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
}

// Compute calculates the bill for the given cart and optional discount rule.
// It never fails: malformed items degrade to zero contribution, and an
// oversized discount clamps the total at zero.
func Compute(items []LineItem, rule *DiscountRule) BillResult {
	if len(items) == 0 {
		return BillResult{}
	}

	var subtotal float64
	var totalQty int
	for _, it := range items {
		price := it.Price
		if price < 0 {
			price = 0
		}
		qty := it.Qty
		if qty < 0 {
			qty = 0
		}
		subtotal += price * float64(qty)
		totalQty += qty
	}

	serviceCharge := float64(totalQty) * ServiceChargePerItem
	tax := subtotal * GSTRate

	var discount float64
	if rule != nil {
		discount = Project(*rule, subtotal).Amount
	}

	total := subtotal + serviceCharge + tax - discount
	if total < 0 {
		total = 0
	}

	return BillResult{
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
	}
}
