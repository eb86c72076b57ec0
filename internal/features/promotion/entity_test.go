package promotion

import (
	"testing"

	"github.com/shopspring/decimal"
)

func Test_calculateDiscount(t *testing.T) {
	fixed100Min1000 := &Promotion{
		Name:          "100 off orders over 1000",
		DiscountType:  DiscountFixed,
		DiscountValue: decimal.NewFromInt(100),
		MinAmount:     decimal.NewFromInt(1000),
	}

	percent10NoMin := &Promotion{
		Name:          "10% off storewide",
		DiscountType:  DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		MinAmount:     decimal.Zero,
	}

	tests := []struct {
		name     string
		promo    *Promotion
		subtotal int64
		want     int64
	}{
		{"fixed discount applies at the minimum", fixed100Min1000, 1000, 100},
		{"fixed discount below minimum yields zero", fixed100Min1000, 500, 0},
		{"percentage discount with no minimum", percent10NoMin, 200, 20},
		{"percentage discount on zero subtotal", percent10NoMin, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.promo.CalculateDiscount(decimal.NewFromInt(tt.subtotal))
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("got discount %s, want %d", got, tt.want)
			}
		})
	}
}

func Test_calculateDiscount_fixedIsCappedAtSubtotal(t *testing.T) {
	promo := &Promotion{
		DiscountType:  DiscountFixed,
		DiscountValue: decimal.NewFromInt(100),
		MinAmount:     decimal.NewFromInt(50),
	}

	got := promo.CalculateDiscount(decimal.NewFromInt(60))
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("got discount %s, want cap at subtotal 60", got)
	}
}

func Test_calculateDiscount_unknownKindYieldsZero(t *testing.T) {
	promo := &Promotion{
		DiscountType:  DiscountKind("bogo"),
		DiscountValue: decimal.NewFromInt(10),
	}

	if got := promo.CalculateDiscount(decimal.NewFromInt(100)); !got.IsZero() {
		t.Errorf("got discount %s, want zero for unknown kind", got)
	}
}
