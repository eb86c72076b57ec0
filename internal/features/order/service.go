package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/eventengine"
	"github.com/mkalio/shopcore-backend/internal/eventengine/event"
	"github.com/mkalio/shopcore-backend/internal/features/cart"
	"github.com/mkalio/shopcore-backend/internal/features/catalog"
	"github.com/mkalio/shopcore-backend/internal/features/promotion"
	"github.com/mkalio/shopcore-backend/internal/metrics"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type cartLocker interface {
	WithUserLock(userID int64, fn func(c *cart.Cart) error) error
}

type reservationCommitter interface {
	CommitAll(lines []catalog.CommitLine) ([]catalog.DepletedProduct, error)
}

type promotionReader interface {
	FindByID(promotionID int64) (*promotion.Promotion, error)
}

type ServiceConfig struct {
	Store        *Store
	CartStore    cartLocker
	Promotions   promotionReader
	Reservations reservationCommitter
	EventEngine  eventengine.RegisterPublisher // optional
	Metrics      *metrics.ServerMetrics        // optional
}

// service is the checkout engine: it converts a non-empty cart into an
// immutable order, consuming the cart's reservations.
type service struct {
	*ServiceConfig
}

func NewService(cfg *ServiceConfig) *service {
	if cfg.Store == nil || cfg.CartStore == nil || cfg.Promotions == nil || cfg.Reservations == nil {
		panic("order service: Store, CartStore, Promotions and Reservations are required")
	}

	if cfg.EventEngine != nil {
		cfg.EventEngine.RegisterEvents(
			event.OrderCreatedEventName,
			event.StockDepletedEventName,
		)
	}

	return &service{
		ServiceConfig: cfg,
	}
}

// createOrder runs entirely inside the user's cart critical section, so
// it is serialized against add/remove and against a concurrent checkout
// for the same user: of two racing checkouts exactly one wins, the other
// observes the emptied cart and fails with ErrEmptyCart.
func (s *service) createOrder(ctx context.Context, userID int64, promotionID *int64) (*Order, error) {
	var created *Order
	var depleted []catalog.DepletedProduct

	err := s.CartStore.WithUserLock(userID, func(c *cart.Cart) error {
		if len(c.Lines) == 0 {
			return servererrors.ErrEmptyCart
		}

		subtotal := c.Total()
		discount := s.resolveDiscount(promotionID, subtotal)
		total := decimal.Max(subtotal.Sub(discount), decimal.Zero)

		commitLines := make([]catalog.CommitLine, 0, len(c.Lines))
		items := make([]*cart.CartLine, 0, len(c.Lines))
		for _, line := range c.Lines {
			commitLines = append(commitLines, catalog.CommitLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})

			cp := *line
			items = append(items, &cp)
		}

		// all-or-nothing: a failure here has consumed nothing and the
		// cart is left exactly as it was
		var err error
		depleted, err = s.Reservations.CommitAll(commitLines)
		if err != nil {
			return fmt.Errorf("checkout commit failed: %w", err)
		}

		// the commit cannot fail past this point, so allocating the id
		// now keeps the sequence gapless
		created = &Order{
			OrderID:   s.Store.allocateNext(),
			UserID:    userID,
			Items:     items,
			Subtotal:  subtotal,
			Discount:  discount,
			Total:     total,
			Status:    StatusPending,
			CreatedAt: time.Now(),
		}

		s.Store.insertOne(created)
		c.Lines = nil // the cart record itself persists for reuse

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(created, depleted)

	slog.Info(
		"order created",
		"order_id", created.OrderID,
		"user_id", created.UserID,
		"total", created.Total.String(),
	)

	return created, nil
}

// resolveDiscount computes the discount for a subtotal. An unknown
// promotion id or an unmet minimum silently yields zero; "no discount
// applied" is an outcome, not an error.
func (s *service) resolveDiscount(promotionID *int64, subtotal decimal.Decimal) decimal.Decimal {
	if promotionID == nil {
		return decimal.Zero
	}

	promo, err := s.Promotions.FindByID(*promotionID)
	if err != nil {
		return decimal.Zero
	}

	return promo.CalculateDiscount(subtotal)
}

func (s *service) publishCreated(o *Order, depleted []catalog.DepletedProduct) {
	if s.Metrics != nil {
		s.Metrics.OrdersCreated.Inc()
	}

	if s.EventEngine == nil {
		return
	}

	createdEvent := &event.OrderCreatedEvent{
		OrderID: o.OrderID,
		UserID:  o.UserID,
		Total:   o.Total,
	}
	if err := s.EventEngine.Publish(&event.Event{
		Name:    createdEvent.GetEventName(),
		Payload: createdEvent,
	}); err != nil {
		slog.Warn("failed to publish order created event", "error", err.Error())
	}

	for _, d := range depleted {
		depletedEvent := &event.StockDepletedEvent{
			ProductID: d.ProductID,
			Available: d.Available,
			Threshold: d.Threshold,
		}
		if err := s.EventEngine.Publish(&event.Event{
			Name:    depletedEvent.GetEventName(),
			Payload: depletedEvent,
		}); err != nil {
			slog.Warn("failed to publish stock depleted event", "error", err.Error())
		}
	}
}

func (s *service) getOrder(ctx context.Context, orderID int64) (*Order, error) {
	return s.Store.findByID(orderID)
}
