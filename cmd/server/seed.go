package server

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/features/catalog"
	"github.com/mkalio/shopcore-backend/internal/features/promotion"
	"github.com/mkalio/shopcore-backend/internal/features/user"
)

const defaultRestockThreshold = 5

// seedCatalogStore loads the initial product catalog. Ids are assigned
// in order, starting at 1.
func seedCatalogStore() *catalog.Store {
	mustProduct := func(name, description, category string, price decimal.Decimal, stock int64) *catalog.Product {
		p, err := catalog.NewProduct(
			name,
			description,
			category,
			price,
			stock,
			defaultRestockThreshold,
		)
		if err != nil {
			log.Fatalf("invalid seed product %q: %v", name, err)
		}

		return p
	}

	store := catalog.NewStore()
	store.Seed(
		mustProduct(
			"iPhone 15",
			"Latest generation smartphone",
			"electronics",
			decimal.NewFromInt(5999),
			50,
		),
		mustProduct(
			"MacBook Pro",
			"Professional laptop",
			"electronics",
			decimal.NewFromInt(12999),
			30,
		),
		mustProduct(
			"AirPods Pro",
			"Wireless noise-cancelling earbuds",
			"accessories",
			decimal.NewFromInt(1899),
			100,
		),
	)

	return store
}

// seedPromotionStore loads the initial promotions. Ids are assigned in
// order, starting at 1.
func seedPromotionStore() *promotion.Store {
	store := promotion.NewStore()
	store.Seed(
		&promotion.Promotion{
			Name:          "100 off orders over 1000",
			DiscountType:  promotion.DiscountFixed,
			DiscountValue: decimal.NewFromInt(100),
			MinAmount:     decimal.NewFromInt(1000),
		},
		&promotion.Promotion{
			Name:          "10% off storewide",
			DiscountType:  promotion.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			MinAmount:     decimal.Zero,
		},
	)

	return store
}

// seedUserStore loads the fixed set of accounts. Passwords are hashed
// at startup; there is no registration endpoint.
func seedUserStore() *user.Store {
	mustUser := func(userID int64, username, password, role string) *user.User {
		u, err := user.NewUser(userID, username, password, role)
		if err != nil {
			log.Fatalf("invalid seed user %q: %v", username, err)
		}

		return u
	}

	store := user.NewStore()
	store.Seed(
		mustUser(1, "admin", "adminpass", "admin"),
		mustUser(1001, "user1001", "pass1001", "user"),
		mustUser(1002, "user1002", "pass1002", "user"),
		mustUser(1003, "user1003", "pass1003", "user"),
		mustUser(2001, "user2001", "pass2001", "user"),
	)

	return store
}
