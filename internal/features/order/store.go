package order

import (
	"sync"
	"sync/atomic"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// Store owns finalized orders and the process-wide order id counter.
type Store struct {
	mu     sync.RWMutex
	orders map[int64]*Order
	nextID atomic.Int64
}

func NewStore() *Store {
	return &Store{
		orders: make(map[int64]*Order),
	}
}

// allocateNext hands out the next order identifier. Ids are monotonically
// increasing and never reused; callers allocate only at the point of
// guaranteed success so failed checkouts leave no gaps.
func (s *Store) allocateNext() int64 {
	return s.nextID.Add(1)
}

func (s *Store) insertOne(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.OrderID] = o
}

func (s *Store) findByID(orderID int64) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, servererrors.ErrOrderNotFound
	}

	// orders are immutable, handing out the pointer is safe
	return o, nil
}
