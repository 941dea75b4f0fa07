package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
)

// Status enumerates the order lifecycle states this service records.
type Status string

const (
	StatusPlaced    Status = "placed"
	StatusCancelled Status = "cancelled"
)

// Order is a placed cart with its server-computed bill frozen at placement.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     string             `bson:"user_id" json:"userId"`
	Items      []billing.LineItem `bson:"items" json:"items"`
	CouponCode string             `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	Bill       billing.BillResult `bson:"bill" json:"bill"`
	Status     Status             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
