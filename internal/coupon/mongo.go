package coupon

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

// ErrDuplicateCode is returned when inserting a rule whose code already exists.
var ErrDuplicateCode = errors.New("coupon: code already exists")

// MongoStore persists coupon rules in a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore binds the store to the coupons collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("coupons")}
}

// FindActive implements Store. The active/unexpired constraints are part of
// the query so the read and the usability check cannot diverge.
func (s *MongoStore) FindActive(ctx context.Context, code string, at time.Time) (Rule, error) {
	filter := bson.M{
		"code":        code,
		"is_active":   true,
		"expiry_date": bson.M{"$gt": at},
	}
	var rule Rule
	if err := s.collection.FindOne(ctx, filter).Decode(&rule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Rule{}, ErrNotFound
		}
		return Rule{}, fmt.Errorf("find coupon: %w", err)
	}
	return rule, nil
}

// Insert stores a new rule. The code must already be canonicalized.
func (s *MongoStore) Insert(ctx context.Context, rule *Rule) error {
	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, rule); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// List returns all rules ordered by creation time, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []Rule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return rules, nil
}

// Deactivate flips a rule inactive by code.
func (s *MongoStore) Deactivate(ctx context.Context, code string) error {
	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateExpired flips every still-active rule whose expiry has passed.
// Used by the background sweeper; safe to run repeatedly.
func (s *MongoStore) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	filter := bson.M{"is_active": true, "expiry_date": bson.M{"$lte": before}}
	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
	result, err := s.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired coupons: %w", err)
	}
	return result.ModifiedCount, nil
}
