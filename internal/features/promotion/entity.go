package promotion

import "github.com/shopspring/decimal"

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Promotion is immutable after creation; the store hands out copies.
type Promotion struct {
	PromotionID   int64           `json:"promotion_id"`
	Name          string          `json:"name"`
	DiscountType  DiscountKind    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinAmount     decimal.Decimal `json:"min_amount"`
}

// CalculateDiscount returns the discount for a cart subtotal. A subtotal
// below the qualifying minimum yields zero, which is a documented
// "no discount applied" outcome rather than an error. A fixed discount is
// capped at the subtotal so a total can never go negative.
func (p *Promotion) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThan(p.MinAmount) {
		return decimal.Zero
	}

	switch p.DiscountType {
	case DiscountPercentage:
		return subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100))

	case DiscountFixed:
		return decimal.Min(p.DiscountValue, subtotal)

	default:
		return decimal.Zero
	}
}
