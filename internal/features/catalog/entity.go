package catalog

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// defaultRestockThreshold is used when a product is created without an
// explicit threshold; a committed checkout that leaves availability at or
// below it raises a restock alert.
const defaultRestockThreshold int64 = 5

// Product owns its stock counters. The reserved count is only ever
// changed through the ReservationEngine, which holds the store lock;
// everywhere else products are read as copies.
type Product struct {
	ProductID        int64           `json:"product_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	Stock            int64           `json:"stock"`
	Reserved         int64           `json:"reserved"`
	RestockThreshold int64           `json:"restock_threshold"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"-"`
}

// Available is the quantity that can still be newly reserved.
func (p *Product) Available() int64 {
	return p.Stock - p.Reserved
}

// NewProduct validates the product constraints at construction so invalid
// records never enter the store: price must be positive, stock and the
// restock threshold non-negative.
func NewProduct(name, description, category string, price decimal.Decimal, stock, restockThreshold int64) (*Product, error) {
	if !price.IsPositive() {
		return nil, servererrors.New(
			http.StatusUnprocessableEntity,
			"price must be greater than zero",
			nil,
		)
	}

	if stock < 0 {
		return nil, servererrors.New(
			http.StatusUnprocessableEntity,
			"stock must not be negative",
			nil,
		)
	}

	if restockThreshold < 0 {
		restockThreshold = defaultRestockThreshold
	}

	now := time.Now()

	return &Product{
		Name:             name,
		Description:      description,
		Category:         category,
		Price:            price,
		Stock:            stock,
		RestockThreshold: restockThreshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}
