package catalog

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

func newTestStore(t *testing.T, stock int64) *Store {
	t.Helper()

	store := NewStore()

	product, err := NewProduct(
		"Test Phone",
		"",
		"electronics",
		decimal.NewFromFloat(5999.0),
		stock,
		5,
	)
	if err != nil {
		t.Fatalf("failed to build test product: %v", err)
	}

	store.Seed(product)
	return store
}

func Test_reserve_thenReleaseRestoresAvailability(t *testing.T) {
	store := newTestStore(t, 50)
	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 3); err != nil {
		t.Fatalf("failed to reserve: %v", err)
	}

	p, err := store.findByID(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Reserved != 3 || p.Available() != 47 {
		t.Fatalf("got reserved=%d available=%d, want 3 and 47", p.Reserved, p.Available())
	}

	if err := engine.Release(1, 3); err != nil {
		t.Fatalf("failed to release: %v", err)
	}

	p, _ = store.findByID(1)
	if p.Reserved != 0 || p.Available() != 50 {
		t.Fatalf("got reserved=%d available=%d, want 0 and 50", p.Reserved, p.Available())
	}
}

func Test_reserve_rejectsNonPositiveQuantity(t *testing.T) {
	engine := NewReservationEngine(newTestStore(t, 10))

	for _, quantity := range []int64{0, -1} {
		if err := engine.Reserve(1, quantity); !errors.Is(err, servererrors.ErrInvalidQuantity) {
			t.Errorf("Reserve(1, %d) = %v, want ErrInvalidQuantity", quantity, err)
		}
	}
}

func Test_reserve_unknownProduct(t *testing.T) {
	engine := NewReservationEngine(newTestStore(t, 10))

	if err := engine.Reserve(99, 1); !errors.Is(err, servererrors.ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
}

// Racing callers must see exactly stock winners, the rest must fail with
// ErrInsufficientStock, and reserved must never overshoot stock.
func Test_reserve_noOversellUnderRace(t *testing.T) {
	const stock = 50
	const callers = 120

	store := newTestStore(t, stock)
	engine := NewReservationEngine(store)

	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- engine.Reserve(1, 1)
		}()
	}

	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, servererrors.ErrInsufficientStock):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != stock || losses != callers-stock {
		t.Errorf("got %d wins and %d losses, want %d and %d", wins, losses, stock, callers-stock)
	}

	p, _ := store.findByID(1)
	if p.Reserved != stock {
		t.Errorf("got reserved=%d, want %d", p.Reserved, stock)
	}
	if p.Reserved > p.Stock {
		t.Errorf("invariant violated: reserved %d > stock %d", p.Reserved, p.Stock)
	}
}

func Test_release_exceedingReservedClampsAndReports(t *testing.T) {
	store := newTestStore(t, 10)
	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 2); err != nil {
		t.Fatal(err)
	}

	err := engine.Release(1, 5)
	if !errors.Is(err, servererrors.ErrInvariantViolation) {
		t.Fatalf("got %v, want ErrInvariantViolation", err)
	}

	p, _ := store.findByID(1)
	if p.Reserved != 0 {
		t.Errorf("got reserved=%d, want clamp to 0", p.Reserved)
	}
}

func Test_commit_consumesStockAndReservation(t *testing.T) {
	store := newTestStore(t, 50)
	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := engine.Commit(1, 2); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	p, _ := store.findByID(1)
	if p.Stock != 48 || p.Reserved != 0 {
		t.Errorf("got stock=%d reserved=%d, want 48 and 0", p.Stock, p.Reserved)
	}
}

func Test_commit_exceedingReservedFails(t *testing.T) {
	store := newTestStore(t, 50)
	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 1); err != nil {
		t.Fatal(err)
	}

	if err := engine.Commit(1, 2); !errors.Is(err, servererrors.ErrInvariantViolation) {
		t.Fatalf("got %v, want ErrInvariantViolation", err)
	}

	// a failed commit must not have touched the counters
	p, _ := store.findByID(1)
	if p.Stock != 50 || p.Reserved != 1 {
		t.Errorf("got stock=%d reserved=%d, want 50 and 1", p.Stock, p.Reserved)
	}
}

func Test_commitAll_allOrNothing(t *testing.T) {
	store := NewStore()

	for _, name := range []string{"A", "B"} {
		p, err := NewProduct(name, "", "misc", decimal.NewFromInt(10), 10, 2)
		if err != nil {
			t.Fatal(err)
		}
		store.Seed(p)
	}

	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 4); err != nil {
		t.Fatal(err)
	}
	// product 2 has nothing reserved; committing it must fail and leave
	// product 1's reservation intact
	_, err := engine.CommitAll([]CommitLine{
		{ProductID: 1, Quantity: 4},
		{ProductID: 2, Quantity: 1},
	})
	if !errors.Is(err, servererrors.ErrInvariantViolation) {
		t.Fatalf("got %v, want ErrInvariantViolation", err)
	}

	p1, _ := store.findByID(1)
	if p1.Stock != 10 || p1.Reserved != 4 {
		t.Errorf("got stock=%d reserved=%d, want untouched 10 and 4", p1.Stock, p1.Reserved)
	}
}

func Test_commitAll_reportsDepletedProducts(t *testing.T) {
	store := newTestStore(t, 6) // threshold is 5
	engine := NewReservationEngine(store)

	if err := engine.Reserve(1, 2); err != nil {
		t.Fatal(err)
	}

	depleted, err := engine.CommitAll([]CommitLine{{ProductID: 1, Quantity: 2}})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	if len(depleted) != 1 {
		t.Fatalf("got %d depleted products, want 1", len(depleted))
	}
	if depleted[0].ProductID != 1 || depleted[0].Available != 4 {
		t.Errorf("got %+v, want product 1 with available 4", depleted[0])
	}
}
