package ingredient

import (
	"math"
	"strings"
)

// ScaleQuantity multiplies the amount in quantity by factor and renders it again.
// Text that cannot be scaled ("pinch", "some flour") is returned unchanged, and a factor of
// exactly 1 returns the input as is.
func ScaleQuantity(quantity *string, factor float64) *string {
	if quantity == nil {
		return nil
	}
	if factor == 1 {
		return quantity
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return quantity
	}

	raw := strings.TrimSpace(*quantity)
	if raw == "" || nonScalable[strings.ToLower(raw)] {
		return quantity
	}
	parts, ok := splitQuantity(raw)
	if !ok {
		return quantity
	}
	unit := strings.ToLower(parts.rest)

	// Ranges scale both bounds, not just the lower one ParseQuantity keeps.
	if parts.isRange {
		scaled := withUnit(FormatQuantity(parts.low*factor)+rangeSeparator(parts.sep)+FormatQuantity(parts.high*factor), unit)
		return &scaled
	}

	scaled := withUnit(FormatQuantity(parts.low*factor), unit)
	return &scaled
}

// rangeSeparator keeps the cook's dash but drops the spacing around it.
func rangeSeparator(sep string) string {
	if sep == "to" {
		return " to "
	}
	return sep
}

func withUnit(amount, unit string) string {
	if unit == "" {
		return amount
	}
	return amount + " " + unit
}

// ScaleFactor is the multiplier that turns a recipe for original servings into one for desired servings.
func ScaleFactor(original, desired int) float64 {
	if original <= 0 || desired <= 0 {
		return 1
	}
	return float64(desired) / float64(original)
}

// ScaleIngredients returns a copy of items with every quantity scaled by factor.
func ScaleIngredients(items []RawIngredient, factor float64) []RawIngredient {
	scaled := make([]RawIngredient, len(items))
	for i, item := range items {
		scaled[i] = RawIngredient{
			Name:     item.Name,
			Quantity: ScaleQuantity(item.Quantity, factor),
		}
	}
	return scaled
}
