package cart

import "github.com/shopspring/decimal"

// CartLine is one product entry in a cart. Price is a snapshot taken when
// the line was first added and does not track later catalog changes.
// Every line's quantity is backed by a live reservation of equal size.
type CartLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart is owned by exactly one user. Lines keep insertion order. All
// access happens inside the store's per-user critical section.
type Cart struct {
	UserID int64       `json:"user_id"`
	Lines  []*CartLine `json:"items"`
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

// FindLine returns the line for a product, or nil.
func (c *Cart) FindLine(productID int64) *CartLine {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line
		}
	}

	return nil
}

// RemoveLine deletes the line for a product, preserving the order of the
// remaining lines, and returns it. Nil means the product was not in the
// cart.
func (c *Cart) RemoveLine(productID int64) *CartLine {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return line
		}
	}

	return nil
}
