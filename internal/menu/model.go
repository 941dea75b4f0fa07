package menu

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one orderable dish offered by a canteen.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	CanteenID   string             `bson:"canteen_id" json:"canteenId"`
	Available   bool               `bson:"available" json:"available"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
