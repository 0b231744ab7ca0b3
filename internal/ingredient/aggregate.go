package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawIngredient is one ingredient line of one recipe. A nil Quantity means no amount was given.
type RawIngredient struct {
	Name     string  `json:"name" binding:"required"`
	Quantity *string `json:"quantity"`
}

// AggregatedItem is one merged shopping list line.
type AggregatedItem struct {
	IngredientName string  `json:"ingredientName"`
	Quantity       *string `json:"quantity"`
	Category       string  `json:"category"`
}

// NormalizeName lowercases name and strips a trailing English plural ending so that
// "Tomatoes" and "tomato" group together. It is a heuristic: "olives" becomes "oliv" and
// will not merge with "olive".
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasSuffix(n, "ies"):
		return strings.TrimSuffix(n, "ies") + "y"
	case strings.HasSuffix(n, "es") && !strings.HasSuffix(n, "ses") && !strings.HasSuffix(n, "ces"):
		return strings.TrimSuffix(n, "es")
	case strings.HasSuffix(n, "s") && !strings.HasSuffix(n, "ss"):
		return strings.TrimSuffix(n, "s")
	}
	return n
}

// amountPattern accepts "2 cups" or "200g"; fractions and ranges are left unparsed.
var amountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([^\d\s/.\-].*)?$`)

type amount struct {
	value float64
	unit  string
}

func parseAmount(text string) (amount, bool) {
	m := amountPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return amount{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return amount{}, false
	}
	return amount{value: v, unit: strings.ToLower(strings.TrimSpace(m[2]))}, true
}

type group struct {
	name     string
	raw      []string
	amounts  []amount
	unparsed bool
}

// AggregateIngredients merges ingredient lines from any number of recipes into shopping list
// items. Lines group by NormalizeName; quantities sharing one unit are summed, anything else is
// kept verbatim and joined with " + ". Output follows first-seen order.
func AggregateIngredients(items []RawIngredient) []AggregatedItem {
	order := make([]string, 0, len(items))
	groups := make(map[string]*group, len(items))

	for _, item := range items {
		key := NormalizeName(item.Name)
		g, ok := groups[key]
		if !ok {
			g = &group{name: strings.TrimSpace(item.Name)}
			groups[key] = g
			order = append(order, key)
		}

		if item.Quantity == nil {
			continue
		}
		raw := strings.TrimSpace(*item.Quantity)
		if raw == "" {
			continue
		}
		g.raw = append(g.raw, raw)
		if a, ok := parseAmount(raw); ok {
			g.amounts = append(g.amounts, a)
		} else {
			g.unparsed = true
		}
	}

	out := make([]AggregatedItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		out = append(out, AggregatedItem{
			IngredientName: g.name,
			Quantity:       g.quantity(),
			Category:       CategorizeIngredient(g.name),
		})
	}
	return out
}

func (g *group) quantity() *string {
	if len(g.raw) == 0 {
		return nil
	}

	if !g.unparsed && sameUnit(g.amounts) {
		var total float64
		for _, a := range g.amounts {
			total += a.value
		}
		q := withUnit(formatTotal(total), g.amounts[0].unit)
		return &q
	}

	joined := strings.Join(g.raw, " + ")
	return &joined
}

func sameUnit(amounts []amount) bool {
	if len(amounts) == 0 {
		return false
	}
	for _, a := range amounts[1:] {
		if a.unit != amounts[0].unit {
			return false
		}
	}
	return true
}

func formatTotal(total float64) string {
	if total == math.Trunc(total) {
		return strconv.FormatFloat(total, 'f', 0, 64)
	}
	return formatDecimal(total)
}
