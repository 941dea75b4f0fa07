package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Storage owns the MongoDB client lifecycle. Connect, ping, and disconnect
// are explicit so startup failures surface immediately instead of on the
// first query.
type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(5)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Storage{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

// CreateIndexes sets up the indexes the query paths depend on. The unique
// coupon code index backs duplicate detection at insert time.
func (s *Storage) CreateIndexes(ctx context.Context) error {
	couponIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "expiry_date", Value: 1}},
		},
	}
	if _, err := s.database.Collection("coupons").Indexes().CreateMany(ctx, couponIndexes); err != nil {
		return fmt.Errorf("create coupons indexes: %w", err)
	}

	menuIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "canteen_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	if _, err := s.database.Collection("menu_items").Indexes().CreateMany(ctx, menuIndexes); err != nil {
		return fmt.Errorf("create menu_items indexes: %w", err)
	}

	orderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := s.database.Collection("orders").Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("create orders indexes: %w", err)
	}

	return nil
}
