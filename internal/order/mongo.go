package order

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo persists orders in a MongoDB collection.
type MongoRepo struct {
	collection *mongo.Collection
}

// NewMongoRepo binds the repo to the orders collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{collection: db.Collection("orders")}
}

// Insert stores a placed order.
func (r *MongoRepo) Insert(ctx context.Context, o *Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByUser returns the caller's orders, newest first.
func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}
