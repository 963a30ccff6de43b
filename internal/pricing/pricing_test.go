package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

func TestCurrentPriceZeroDiscountIsIdentity(t *testing.T) {
	original := decimal.RequireFromString("8000.33")
	got, err := CurrentPrice(original, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(original) {
		t.Fatalf("expected identity, got %s", got)
	}
}

func TestCurrentPriceAppliesDiscount(t *testing.T) {
	tests := []struct {
		name     string
		original string
		percent  float64
		want     string
	}{
		{name: "quarter off", original: "15000", percent: 25, want: "11250"},
		{name: "half off", original: "100.50", percent: 50, want: "50.25"},
		{name: "full discount", original: "42", percent: 100, want: "0"},
		{name: "zero price", original: "0", percent: 30, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentPrice(decimal.RequireFromString(tt.original), tt.percent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCurrentPriceBounds(t *testing.T) {
	original := decimal.RequireFromString("9999.99")
	for _, percent := range []float64{0, 1, 19.5, 50, 99.9, 100} {
		got, err := CurrentPrice(original, percent)
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", percent, err)
		}
		if got.IsNegative() {
			t.Fatalf("price went negative at %v: %s", percent, got)
		}
		if got.GreaterThan(original) {
			t.Fatalf("price exceeded original at %v: %s", percent, got)
		}
	}
}

func TestCurrentPriceRejectsBadInput(t *testing.T) {
	if _, err := CurrentPrice(decimal.RequireFromString("-1"), 10); err == nil {
		t.Fatal("expected error for negative price")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	for _, percent := range []float64{-0.1, 100.1, 200} {
		if _, err := CurrentPrice(decimal.RequireFromString("10"), percent); err == nil {
			t.Fatalf("expected error for percent %v", percent)
		}
	}
}

func TestCurrentPriceIsIdempotent(t *testing.T) {
	original := decimal.RequireFromString("15000")
	first, err := CurrentPrice(original, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CurrentPrice(original, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("expected identical results, got %s and %s", first, second)
	}
}

func TestDisplayRoundsToMinorUnit(t *testing.T) {
	price, err := CurrentPrice(decimal.RequireFromString("10"), 33.333)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Display(price); got.Exponent() < -2 {
		t.Fatalf("display price not rounded: %s", got)
	}
	if got := Display(decimal.RequireFromString("11250")); !got.Equal(decimal.RequireFromString("11250.00")) {
		t.Fatalf("unexpected display value %s", got)
	}
}
