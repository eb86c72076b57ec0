package cart

import "sync"

// Store owns every cart and serializes all access per user: two mutating
// calls for the same user never interleave, while different users only
// contend on the short map lookup. Checkout runs inside the same critical
// section, which is what makes "exactly one of two concurrent checkouts
// succeeds" hold.
//
// Lock ordering: the per-user cart lock is always acquired before any
// catalog lock, never the other way around.
type Store struct {
	mu        sync.Mutex
	carts     map[int64]*Cart
	userLocks map[int64]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		carts:     make(map[int64]*Cart),
		userLocks: make(map[int64]*sync.Mutex),
	}
}

func (s *Store) lockFor(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}

	return lock
}

// WithUserLock runs fn with exclusive access to the user's cart, creating
// an empty cart on first use. fn may call into the catalog; it must not
// call back into this store.
func (s *Store) WithUserLock(userID int64, fn func(c *Cart) error) error {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{UserID: userID}
		s.carts[userID] = c
	}
	s.mu.Unlock()

	return fn(c)
}

// Snapshot returns a deep copy of the user's cart taken inside the user's
// critical section. A user without a cart sees an empty one; no cart
// record is materialized for them.
func (s *Store) Snapshot(userID int64) *Cart {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	c, ok := s.carts[userID]
	s.mu.Unlock()

	if !ok {
		return &Cart{UserID: userID}
	}

	snapshot := &Cart{
		UserID: c.UserID,
		Lines:  make([]*CartLine, 0, len(c.Lines)),
	}
	for _, line := range c.Lines {
		cp := *line
		snapshot.Lines = append(snapshot.Lines, &cp)
	}

	return snapshot
}
