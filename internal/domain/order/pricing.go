package order

import "github.com/shopspring/decimal"

// FinalPrice computes the effective selling price for a product.
//
// A nil, zero, or negative discount percent leaves the MRP untouched.
// Otherwise the discounted price is mrp - mrp*discount/100, rounded to the
// nearest integer with halves rounding away from zero (99 at 50% -> 49.5
// -> 50). Discounts above 100 are not clamped; callers own that decision.
func FinalPrice(mrp int64, discountPercent *int64) int64 {
	if discountPercent == nil || *discountPercent <= 0 {
		return mrp
	}

	price := decimal.NewFromInt(mrp)
	discount := price.Mul(decimal.NewFromInt(*discountPercent)).Div(decimal.NewFromInt(100))

	return price.Sub(discount).Round(0).IntPart()
}
