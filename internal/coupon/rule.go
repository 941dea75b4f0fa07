package coupon

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
)

// Rule is a persisted coupon: a named discount with an activation flag and
// expiry timestamp. Codes are stored canonicalized to upper-case.
type Rule struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Code          string               `bson:"code" json:"code"`
	DiscountType  billing.DiscountType `bson:"discount_type" json:"discountType"`
	DiscountValue float64              `bson:"discount_value" json:"discountValue"`
	MaxDiscount   *float64             `bson:"max_discount,omitempty" json:"maxDiscount,omitempty"`
	IsActive      bool                 `bson:"is_active" json:"isActive"`
	ExpiryDate    time.Time            `bson:"expiry_date" json:"expiryDate"`
	CreatedAt     time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Usable reports whether the rule may be redeemed at the given instant.
func (r Rule) Usable(at time.Time) bool {
	return r.IsActive && r.ExpiryDate.After(at)
}

// Discount converts the rule into the shape the bill calculator consumes.
func (r Rule) Discount() billing.DiscountRule {
	return billing.DiscountRule{
		Type:        r.DiscountType,
		Value:       r.DiscountValue,
		MaxDiscount: r.MaxDiscount,
	}
}
