package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mkalio/shopcore-backend/internal/features/catalog"
	"github.com/mkalio/shopcore-backend/internal/metrics"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type catalogReader interface {
	FindProduct(ctx context.Context, productID int64) (*catalog.Product, error)
}

type reservationEngine interface {
	Reserve(productID, quantity int64) error
	Release(productID, quantity int64) error
}

type service struct {
	store        *Store
	catalog      catalogReader
	reservations reservationEngine
	metrics      *metrics.ServerMetrics // optional
}

func NewService(
	cartStore *Store,
	catalogService catalogReader,
	reservations reservationEngine,
	serverMetrics *metrics.ServerMetrics,
) *service {
	return &service{
		store:        cartStore,
		catalog:      catalogService,
		reservations: reservations,
		metrics:      serverMetrics,
	}
}

// addItem reserves stock first and only then touches the cart, so a
// failed reservation leaves the cart unchanged. The whole operation runs
// inside the user's critical section.
func (s *service) addItem(ctx context.Context, userID, productID, quantity int64) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, servererrors.ErrInvalidQuantity
	}

	var dto *CartDTO

	err := s.store.WithUserLock(userID, func(c *Cart) error {
		product, err := s.catalog.FindProduct(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.reservations.Reserve(productID, quantity); err != nil {
			if errors.Is(err, servererrors.ErrInsufficientStock) && s.metrics != nil {
				s.metrics.ReservationConflicts.Inc()
			}
			return err
		}

		if line := c.FindLine(productID); line != nil {
			// keep the originally captured price snapshot
			line.Quantity += quantity
		} else {
			c.Lines = append(c.Lines, &CartLine{
				ProductID:   productID,
				ProductName: product.Name,
				Quantity:    quantity,
				Price:       product.Price,
			})
		}

		dto = toCartDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info(
		"item added to cart",
		"user_id", userID,
		"product_id", productID,
		"quantity", quantity,
	)

	return dto, nil
}

func (s *service) removeItem(ctx context.Context, userID, productID int64) (*CartDTO, error) {
	var dto *CartDTO

	err := s.store.WithUserLock(userID, func(c *Cart) error {
		line := c.FindLine(productID)
		if line == nil {
			return servererrors.ErrCartItemNotFound
		}

		// release before dropping the line so a failed release leaves
		// the cart untouched
		if err := s.reservations.Release(line.ProductID, line.Quantity); err != nil {
			return err
		}

		c.RemoveLine(productID)

		dto = toCartDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info(
		"item removed from cart",
		"user_id", userID,
		"product_id", productID,
	)

	return dto, nil
}

// getCart never mutates reservation state. A user without a cart sees an
// empty cart with total zero.
func (s *service) getCart(ctx context.Context, userID int64) *CartDTO {
	return toCartDTO(s.store.Snapshot(userID))
}
