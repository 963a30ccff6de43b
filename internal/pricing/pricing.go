package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/mirafzalswe/foodsave/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// CurrentPrice derives the effective sale price from the original price and a
// discount percentage. All arithmetic is exact decimal; a zero discount
// returns the original price untouched so repeated evaluation never drifts.
func CurrentPrice(originalPrice decimal.Decimal, discountPercent float64) (decimal.Decimal, error) {
	if originalPrice.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("original price %s must not be negative", originalPrice))
	}
	if discountPercent < 0 || discountPercent > 100 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("discount percent %v outside [0,100]", discountPercent))
	}
	if discountPercent == 0 {
		return originalPrice, nil
	}

	fraction := decimal.NewFromFloat(discountPercent).Div(oneHundred)
	return originalPrice.Mul(decimal.NewFromInt(1).Sub(fraction)), nil
}

// Display rounds a derived price to the currency's minor unit. Rounding only
// happens here, never before storage or comparison.
func Display(price decimal.Decimal) decimal.Decimal {
	return price.Round(2)
}
