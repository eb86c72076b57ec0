package user

import (
	"sync"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// Store owns the user accounts. Accounts are seeded at startup and never
// modified afterwards, so reads only need the read lock.
type Store struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*User),
	}
}

// Seed loads initial accounts, keyed by username. Meant for process
// startup and tests.
func (s *Store) Seed(users ...*User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if _, exists := s.users[u.Username]; exists {
			panic("duplicate username seeded: " + u.Username)
		}

		s.users[u.Username] = u
	}
}

func (s *Store) findByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, servererrors.ErrInvalidCredentials
	}

	cp := *u
	return &cp, nil
}
