package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkalio/shopcore-backend/internal/features/cart"
	"github.com/mkalio/shopcore-backend/internal/features/catalog"
	"github.com/mkalio/shopcore-backend/internal/features/promotion"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type fixture struct {
	catalogStore *catalog.Store
	engine       *catalog.ReservationEngine
	cartStore    *cart.Store
	orderService *service
}

// newFixture seeds one product with the given price and stock and wires
// the checkout engine with the standard promotions: id 1 is 100 off
// orders over 1000 (fixed), id 2 is 10% off storewide (percentage).
func newFixture(t *testing.T, price int64, stock int64) *fixture {
	t.Helper()

	catalogStore := catalog.NewStore()
	product, err := catalog.NewProduct(
		"Test Phone",
		"",
		"electronics",
		decimal.NewFromInt(price),
		stock,
		5,
	)
	if err != nil {
		t.Fatal(err)
	}
	catalogStore.Seed(product)

	promotionStore := promotion.NewStore()
	promotionStore.Seed(
		&promotion.Promotion{
			Name:          "100 off orders over 1000",
			DiscountType:  promotion.DiscountFixed,
			DiscountValue: decimal.NewFromInt(100),
			MinAmount:     decimal.NewFromInt(1000),
		},
		&promotion.Promotion{
			Name:          "10% off storewide",
			DiscountType:  promotion.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			MinAmount:     decimal.Zero,
		},
	)

	engine := catalog.NewReservationEngine(catalogStore)
	cartStore := cart.NewStore()

	return &fixture{
		catalogStore: catalogStore,
		engine:       engine,
		cartStore:    cartStore,
		orderService: NewService(&ServiceConfig{
			Store:        NewStore(),
			CartStore:    cartStore,
			Promotions:   promotionStore,
			Reservations: engine,
		}),
	}
}

// addToCart reserves stock and appends a backed cart line, the way the
// cart manager does.
func (f *fixture) addToCart(t *testing.T, userID, productID, quantity int64) {
	t.Helper()

	product, err := catalog.NewService(f.catalogStore).FindProduct(context.Background(), productID)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.engine.Reserve(productID, quantity); err != nil {
		t.Fatalf("failed to reserve: %v", err)
	}

	err = f.cartStore.WithUserLock(userID, func(c *cart.Cart) error {
		if line := c.FindLine(productID); line != nil {
			line.Quantity += quantity
			return nil
		}

		c.Lines = append(c.Lines, &cart.CartLine{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    quantity,
			Price:       product.Price,
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) product(t *testing.T, productID int64) *catalog.Product {
	t.Helper()

	p, err := catalog.NewService(f.catalogStore).FindProduct(context.Background(), productID)
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func Test_createOrder_emptyCart(t *testing.T) {
	f := newFixture(t, 100, 10)

	_, err := f.orderService.createOrder(context.Background(), 1001, nil)
	if !errors.Is(err, servererrors.ErrEmptyCart) {
		t.Errorf("got %v, want ErrEmptyCart", err)
	}
}

func Test_createOrder_commitConsumesStockAndClearsCart(t *testing.T) {
	f := newFixture(t, 5999, 50)
	ctx := context.Background()

	f.addToCart(t, 1001, 1, 2)

	created, err := f.orderService.createOrder(ctx, 1001, nil)
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	wantTotal := decimal.NewFromInt(5999 * 2)
	if !created.Subtotal.Equal(wantTotal) || !created.Total.Equal(wantTotal) {
		t.Errorf("got subtotal=%s total=%s, want %s for both", created.Subtotal, created.Total, wantTotal)
	}
	if !created.Discount.IsZero() {
		t.Errorf("got discount=%s, want zero without a promotion", created.Discount)
	}
	if created.Status != StatusPending {
		t.Errorf("got status %q, want %q", created.Status, StatusPending)
	}
	if len(created.Items) != 1 || created.Items[0].Quantity != 2 {
		t.Errorf("order items are not a snapshot of the cart: %+v", created.Items)
	}

	p := f.product(t, 1)
	if p.Stock != 48 || p.Reserved != 0 {
		t.Errorf("got stock=%d reserved=%d, want 48 and 0", p.Stock, p.Reserved)
	}

	// the cart is cleared but reusable
	err = f.cartStore.WithUserLock(1001, func(c *cart.Cart) error {
		if len(c.Lines) != 0 {
			t.Errorf("cart not cleared: %+v", c.Lines)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// the stored order is retrievable by id
	fetched, err := f.orderService.getOrder(ctx, created.OrderID)
	if err != nil {
		t.Fatalf("failed to fetch created order: %v", err)
	}
	if fetched.OrderID != created.OrderID {
		t.Errorf("got order %d, want %d", fetched.OrderID, created.OrderID)
	}
}

func Test_createOrder_discounts(t *testing.T) {
	fixed := int64(1)
	percentage := int64(2)
	unknown := int64(99)

	tests := []struct {
		name         string
		price        int64
		promotionID  *int64
		wantDiscount int64
		wantTotal    int64
	}{
		{"fixed discount at minimum", 1000, &fixed, 100, 900},
		{"fixed discount below minimum", 500, &fixed, 0, 500},
		{"percentage discount", 200, &percentage, 20, 180},
		{"unknown promotion yields zero discount", 200, &unknown, 0, 200},
		{"no promotion", 200, nil, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.price, 10)
			f.addToCart(t, 1001, 1, 1)

			created, err := f.orderService.createOrder(context.Background(), 1001, tt.promotionID)
			if err != nil {
				t.Fatalf("failed to create order: %v", err)
			}

			if !created.Discount.Equal(decimal.NewFromInt(tt.wantDiscount)) {
				t.Errorf("got discount %s, want %d", created.Discount, tt.wantDiscount)
			}
			if !created.Total.Equal(decimal.NewFromInt(tt.wantTotal)) {
				t.Errorf("got total %s, want %d", created.Total, tt.wantTotal)
			}
		})
	}
}

// Two concurrent checkouts for one user: exactly one succeeds, the other
// observes the emptied cart and fails.
func Test_createOrder_checkoutExclusivity(t *testing.T) {
	f := newFixture(t, 100, 10)
	ctx := context.Background()

	f.addToCart(t, 1001, 1, 2)

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orderService.createOrder(ctx, 1001, nil)
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var wins, emptyFailures int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, servererrors.ErrEmptyCart):
			emptyFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 || emptyFailures != 1 {
		t.Errorf("got %d wins and %d empty-cart failures, want exactly 1 of each", wins, emptyFailures)
	}

	p := f.product(t, 1)
	if p.Stock != 8 || p.Reserved != 0 {
		t.Errorf("got stock=%d reserved=%d, want 8 and 0", p.Stock, p.Reserved)
	}
}

func Test_createOrder_idsAreMonotonic(t *testing.T) {
	f := newFixture(t, 100, 10)
	ctx := context.Background()

	var lastID int64
	for _, userID := range []int64{1001, 1002, 1003} {
		f.addToCart(t, userID, 1, 1)

		created, err := f.orderService.createOrder(ctx, userID, nil)
		if err != nil {
			t.Fatalf("failed to create order for user %d: %v", userID, err)
		}

		if created.OrderID <= lastID {
			t.Errorf("order id %d is not greater than %d", created.OrderID, lastID)
		}
		lastID = created.OrderID
	}
}

func Test_getOrder_unknownID(t *testing.T) {
	f := newFixture(t, 100, 10)

	_, err := f.orderService.getOrder(context.Background(), 42)
	if !errors.Is(err, servererrors.ErrOrderNotFound) {
		t.Errorf("got %v, want ErrOrderNotFound", err)
	}
}
