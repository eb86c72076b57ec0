package catalog

import (
	"sort"
	"sync"
	"time"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// Store owns every product record behind a single mutex. Reads hand out
// copies; all writes go through mutate so no caller can touch a record
// outside the lock. One coarse lock is deliberate: contention here is
// tens of concurrent clients, not thousands.
type Store struct {
	mu       sync.RWMutex
	products map[int64]*Product
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		products: make(map[int64]*Product),
	}
}

// Seed loads initial products, assigning ids in order. Meant for process
// startup and tests, before any traffic.
func (s *Store) Seed(products ...*Product) {
	for _, p := range products {
		// seeding duplicates is a programming error worth surfacing early
		if _, err := s.insertOne(p); err != nil {
			panic(err)
		}
	}
}

func (s *Store) insertOne(p *Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.Name == p.Name {
			return 0, servererrors.ErrProductAlreadyExists
		}
	}

	s.nextID++
	p.ProductID = s.nextID
	s.products[p.ProductID] = p

	return p.ProductID, nil
}

func (s *Store) findByID(productID int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, servererrors.ErrProductNotFound
	}

	cp := *p
	return &cp, nil
}

func (s *Store) findAll(category string) []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}

		cp := *p
		products = append(products, &cp)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})

	return products
}

func (s *Store) deleteOne(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}

	// a live reservation must not be orphaned by an admin delete
	if p.Reserved > 0 {
		return servererrors.ErrProductHasReserved
	}

	delete(s.products, productID)
	return nil
}

// mutate runs fn on the live record under the write lock. The whole
// check-and-update in fn is indivisible with respect to every other
// reserve/release/commit on the catalog.
func (s *Store) mutate(productID int64, fn func(p *Product) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return servererrors.ErrProductNotFound
	}

	if err := fn(p); err != nil {
		return err
	}

	p.UpdatedAt = time.Now()
	return nil
}

// mutateAll runs fn once under the write lock with access to every
// record, so multi-product updates observe and apply a single consistent
// snapshot. Used by the reservation engine's checkout commit.
func (s *Store) mutateAll(fn func(products map[int64]*Product) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.products)
}
