package catalog

import (
	"fmt"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// ReservationEngine is the only code path permitted to change a product's
// reserved count. Every operation is a single check-and-update under the
// store lock, so two callers racing for the last unit see exactly one
// winner and reserved can never exceed stock.
type ReservationEngine struct {
	store *Store
}

func NewReservationEngine(store *Store) *ReservationEngine {
	return &ReservationEngine{
		store: store,
	}
}

// CommitLine is one product/quantity pair to consume at checkout.
type CommitLine struct {
	ProductID int64
	Quantity  int64
}

// DepletedProduct reports a product whose availability fell to or below
// its restock threshold during a commit.
type DepletedProduct struct {
	ProductID int64
	Available int64
	Threshold int64
}

// Reserve places a provisional hold of quantity units. It fails with
// ErrInsufficientStock, leaving the reserved count unchanged, when fewer
// than quantity units are available.
func (e *ReservationEngine) Reserve(productID, quantity int64) error {
	if quantity <= 0 {
		return servererrors.ErrInvalidQuantity
	}

	return e.store.mutate(productID, func(p *Product) error {
		if p.Available() < quantity {
			return servererrors.ErrInsufficientStock
		}

		p.Reserved += quantity
		return nil
	})
}

// Release returns quantity reserved units to availability, e.g. when a
// cart line is removed. Releasing more than is currently reserved is a
// logic error: the count is clamped at zero and the violation reported.
func (e *ReservationEngine) Release(productID, quantity int64) error {
	if quantity <= 0 {
		return servererrors.ErrInvalidQuantity
	}

	return e.store.mutate(productID, func(p *Product) error {
		if quantity > p.Reserved {
			hadReserved := p.Reserved
			p.Reserved = 0
			return fmt.Errorf(
				"%w: release of %d exceeds reserved %d on product %d",
				servererrors.ErrInvariantViolation,
				quantity, hadReserved, productID,
			)
		}

		p.Reserved -= quantity
		return nil
	})
}

// Commit permanently converts quantity reserved units into consumed
// stock. Committing more than is reserved is a logic error and mutates
// nothing.
func (e *ReservationEngine) Commit(productID, quantity int64) error {
	if quantity <= 0 {
		return servererrors.ErrInvalidQuantity
	}

	return e.store.mutate(productID, func(p *Product) error {
		if quantity > p.Reserved {
			return fmt.Errorf(
				"%w: commit of %d exceeds reserved %d on product %d",
				servererrors.ErrInvariantViolation,
				quantity, p.Reserved, productID,
			)
		}

		p.Stock -= quantity
		p.Reserved -= quantity
		return nil
	})
}

// CommitAll commits every line or none: all lines are verified against
// their reservations before the first counter changes, under one hold of
// the store lock. A failure therefore leaves the catalog untouched, which
// is what lets checkout roll back without compensation logic.
//
// It returns the products the commit left at or below their restock
// threshold so the caller can raise alerts.
func (e *ReservationEngine) CommitAll(lines []CommitLine) ([]DepletedProduct, error) {
	var depleted []DepletedProduct

	err := e.store.mutateAll(func(products map[int64]*Product) error {
		for _, line := range lines {
			p, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf(
					"%w: commit references missing product %d",
					servererrors.ErrInvariantViolation,
					line.ProductID,
				)
			}

			if line.Quantity <= 0 || line.Quantity > p.Reserved {
				return fmt.Errorf(
					"%w: commit of %d exceeds reserved %d on product %d",
					servererrors.ErrInvariantViolation,
					line.Quantity, p.Reserved, line.ProductID,
				)
			}
		}

		for _, line := range lines {
			p := products[line.ProductID]
			p.Stock -= line.Quantity
			p.Reserved -= line.Quantity

			if p.Available() <= p.RestockThreshold {
				depleted = append(depleted, DepletedProduct{
					ProductID: p.ProductID,
					Available: p.Available(),
					Threshold: p.RestockThreshold,
				})
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return depleted, nil
}
