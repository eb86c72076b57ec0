package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/features/cart"
)

type OrderStatus string

// Fulfillment is out of scope; orders stay pending for the life of the
// process.
const StatusPending OrderStatus = "pending"

// Order is immutable once created. Items is a snapshot copy of the cart
// lines at commit time, detached from the live cart.
type Order struct {
	OrderID   int64            `json:"order_id"`
	UserID    int64            `json:"user_id"`
	Items     []*cart.CartLine `json:"items"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Discount  decimal.Decimal  `json:"discount"`
	Total     decimal.Decimal  `json:"total"`
	Status    OrderStatus      `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
