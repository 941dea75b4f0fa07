package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an item id matches nothing.
var ErrNotFound = errors.New("menu: item not found")

// MongoRepo persists menu items in a MongoDB collection.
type MongoRepo struct {
	collection *mongo.Collection
}

// NewMongoRepo binds the repo to the menu_items collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{collection: db.Collection("menu_items")}
}

// List returns items, optionally filtered by canteen.
func (r *MongoRepo) List(ctx context.Context, canteenID string) ([]Item, error) {
	filter := bson.M{}
	if canteenID != "" {
		filter["canteen_id"] = canteenID
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

// Create inserts a new item and fills in its identifier and timestamps.
func (r *MongoRepo) Create(ctx context.Context, item *Item) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing item.
func (r *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, item *Item) error {
	item.ID = id
	item.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category":    item.Category,
		"canteen_id":  item.CanteenID,
		"available":   item.Available,
		"image_url":   item.ImageURL,
		"updated_at":  item.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item permanently.
func (r *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
