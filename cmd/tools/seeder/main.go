// Seeder loads a starter menu and a few demo coupons into MongoDB so a fresh
// environment has something to order against. Safe to re-run: existing coupon
// codes are skipped, menu items are inserted as-is.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/config"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/coupon"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/menu"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
	storemongo "github.com/usrinivasan240-cpu/shareplate-api/internal/store/mongo"
)

func main() {
	skipMenu := flag.Bool("skip-menu", false, "do not insert menu items")
	flag.Parse()

	logger := obs.NewLogger("console", "info").With().Str("component", "seeder").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	storage, err := storemongo.New(storemongo.Config{
		URI:      cfg.MongoURL,
		Database: cfg.MongoDatabase,
		Timeout:  cfg.MongoConnectTO,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() { _ = storage.Close(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("create indexes")
	}

	db := storage.Database()
	couponStore := coupon.NewMongoStore(db)

	cap10 := 50.0
	rules := []coupon.Rule{
		{
			Code:          "WELCOME10",
			DiscountType:  billing.DiscountPercentage,
			DiscountValue: 10,
			MaxDiscount:   &cap10,
			IsActive:      true,
			ExpiryDate:    time.Now().AddDate(0, 3, 0),
		},
		{
			Code:          "FLAT20",
			DiscountType:  billing.DiscountFixed,
			DiscountValue: 20,
			IsActive:      true,
			ExpiryDate:    time.Now().AddDate(0, 1, 0),
		},
	}
	for _, rule := range rules {
		rule := rule
		if err := couponStore.Insert(ctx, &rule); err != nil {
			if errors.Is(err, coupon.ErrDuplicateCode) {
				logger.Info().Str("code", rule.Code).Msg("coupon exists, skipping")
				continue
			}
			logger.Fatal().Err(err).Str("code", rule.Code).Msg("insert coupon")
		}
		logger.Info().Str("code", rule.Code).Msg("coupon seeded")
	}

	if *skipMenu {
		logger.Info().Msg("seed complete")
		return
	}

	menuRepo := menu.NewMongoRepo(db)
	items := []menu.Item{
		{Name: "Masala Dosa", Description: "Crisp dosa with potato filling", Price: 60, Category: "breakfast", CanteenID: "main", Available: true},
		{Name: "Veg Thali", Description: "Rice, two curries, curd and papad", Price: 90, Category: "lunch", CanteenID: "main", Available: true},
		{Name: "Chai", Price: 12, Category: "beverages", CanteenID: "main", Available: true},
		{Name: "Chicken Biryani", Description: "Friday special", Price: 140, Category: "lunch", CanteenID: "annex", Available: true},
		{Name: "Lime Juice", Price: 20, Category: "beverages", CanteenID: "annex", Available: true},
	}
	for _, item := range items {
		item := item
		if err := menuRepo.Create(ctx, &item); err != nil {
			logger.Fatal().Err(err).Str("name", item.Name).Msg("insert menu item")
		}
		logger.Info().Str("name", item.Name).Str("canteen", item.CanteenID).Msg("menu item seeded")
	}
	logger.Info().Msg("seed complete")
}
