package promotion

import (
	"sort"
	"sync"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type Store struct {
	mu         sync.RWMutex
	promotions map[int64]*Promotion
	nextID     int64
}

func NewStore() *Store {
	return &Store{
		promotions: make(map[int64]*Promotion),
	}
}

// Seed loads initial promotions, assigning ids in order. Meant for
// process startup and tests.
func (s *Store) Seed(promotions ...*Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range promotions {
		s.nextID++
		p.PromotionID = s.nextID
		s.promotions[p.PromotionID] = p
	}
}

func (s *Store) FindByID(promotionID int64) (*Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.promotions[promotionID]
	if !ok {
		return nil, servererrors.ErrPromotionNotFound
	}

	cp := *p
	return &cp, nil
}

func (s *Store) FindAll() []*Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promotions := make([]*Promotion, 0, len(s.promotions))
	for _, p := range s.promotions {
		cp := *p
		promotions = append(promotions, &cp)
	}

	sort.Slice(promotions, func(i, j int) bool {
		return promotions[i].PromotionID < promotions[j].PromotionID
	})

	return promotions
}
