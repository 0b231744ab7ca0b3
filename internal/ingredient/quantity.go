// Package ingredient parses, scales, categorizes and merges recipe ingredient quantities.
package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuantity is a quantity string split into its numeric value and unit.
type ParsedQuantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Raw   string  `json:"raw"`
}

// nonScalable holds quantity phrases that carry no amount and must pass through scaling untouched.
var nonScalable = map[string]bool{
	"pinch":       true,
	"a pinch":     true,
	"to taste":    true,
	"as needed":   true,
	"as required": true,
	"a dash":      true,
	"dash":        true,
	"a splash":    true,
	"splash":      true,
	"a handful":   true,
	"handful":     true,
	"some":        true,
	"a few":       true,
	"few":         true,
	"for garnish": true,
	"to serve":    true,
	"optional":    true,
}

// amountExpr matches one amount: a mixed number, a fraction, a decimal (".5" included) or an integer.
const amountExpr = `(\d+\s+\d+/\d+|\d+/\d+|\d*\.\d+|\d+)`

var (
	// Tried in order: hyphenated mixed numbers ("1-1/2"), ranges, single amounts.
	hyphenMixedPattern = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)\s*(.*)$`)
	rangePattern       = regexp.MustCompile(`^` + amountExpr + `\s*([-–—]|\bto\b)\s*` + amountExpr + `\s*(.*)$`)
	quantityPattern    = regexp.MustCompile(`^` + amountExpr + `\s*(.*)$`)
)

// unicodeFractions spells vulgar fraction characters out so "1½" reads as "1 1/2".
var unicodeFractions = strings.NewReplacer(
	"¼", " 1/4 ",
	"½", " 1/2 ",
	"¾", " 3/4 ",
	"⅓", " 1/3 ",
	"⅔", " 2/3 ",
	"⅕", " 1/5 ",
	"⅖", " 2/5 ",
	"⅗", " 3/5 ",
	"⅘", " 4/5 ",
	"⅙", " 1/6 ",
	"⅚", " 5/6 ",
	"⅛", " 1/8 ",
	"⅜", " 3/8 ",
	"⅝", " 5/8 ",
	"⅞", " 7/8 ",
)

// quantityParts is a quantity split into its amounts and trailing text. high and sep are only set
// for ranges.
type quantityParts struct {
	low, high float64
	sep       string
	isRange   bool
	rest      string
}

// ParseQuantity extracts a leading amount and trailing unit from free text such as "1 1/2 cups".
// Ranges report their lower bound. It reports false for empty text, for phrases like "pinch" or
// "to taste", for text without a leading number, and when the text after the amount still starts
// like a number ("1/2/3", "2 3 cups").
func ParseQuantity(text string) (ParsedQuantity, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return ParsedQuantity{}, false
	}
	if nonScalable[strings.ToLower(raw)] {
		return ParsedQuantity{}, false
	}

	parts, ok := splitQuantity(raw)
	if !ok {
		return ParsedQuantity{}, false
	}

	return ParsedQuantity{
		Value: parts.low,
		Unit:  strings.ToLower(parts.rest),
		Raw:   raw,
	}, true
}

// splitQuantity finds the amount or range at the start of s.
func splitQuantity(s string) (quantityParts, bool) {
	if strings.ContainsAny(s, "¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞") {
		s = strings.Join(strings.Fields(unicodeFractions.Replace(s)), " ")
	}

	var parts quantityParts
	if m := hyphenMixedPattern.FindStringSubmatch(s); m != nil && properFraction(m[2], m[3]) {
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, _ := fraction(m[2], m[3])
		parts = quantityParts{low: whole + frac, rest: m[4]}
	} else if m := rangePattern.FindStringSubmatch(s); m != nil {
		low, okLow := evalAmount(m[1])
		high, okHigh := evalAmount(m[3])
		if !okLow || !okHigh {
			return quantityParts{}, false
		}
		parts = quantityParts{low: low, high: high, sep: m[2], isRange: true, rest: m[4]}
	} else if m := quantityPattern.FindStringSubmatch(s); m != nil {
		v, ok := evalAmount(m[1])
		if !ok {
			return quantityParts{}, false
		}
		parts = quantityParts{low: v, rest: m[2]}
	} else {
		return quantityParts{}, false
	}

	parts.rest = strings.TrimSpace(parts.rest)
	if parts.rest != "" && strings.ContainsRune("0123456789/.-–—", []rune(parts.rest)[0]) {
		return quantityParts{}, false
	}
	return parts, true
}

// evalAmount evaluates one amountExpr match.
func evalAmount(s string) (float64, bool) {
	fields := strings.Fields(s)
	switch {
	case len(fields) == 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		num, denom, _ := strings.Cut(fields[1], "/")
		frac, ok := fraction(num, denom)
		return whole + frac, ok
	case strings.Contains(s, "/"):
		num, denom, _ := strings.Cut(s, "/")
		return fraction(num, denom)
	default:
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}
}

func properFraction(num, denom string) bool {
	n, errN := strconv.Atoi(num)
	d, errD := strconv.Atoi(denom)
	return errN == nil && errD == nil && d > 0 && n < d
}

func fraction(num, denom string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(denom, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// fractionEpsilon is how far a fractional part may sit from a common fraction and still print as one.
const fractionEpsilon = 0.01

var commonFractions = []struct {
	value float64
	text  string
}{
	{1.0 / 8, "1/8"},
	{1.0 / 4, "1/4"},
	{1.0 / 3, "1/3"},
	{3.0 / 8, "3/8"},
	{1.0 / 2, "1/2"},
	{5.0 / 8, "5/8"},
	{2.0 / 3, "2/3"},
	{3.0 / 4, "3/4"},
	{7.0 / 8, "7/8"},
}

// FormatQuantity renders value the way a cook would write it: "3", "1/2", "2 1/4" or "2.7".
func FormatQuantity(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	if value < 0 {
		return "-" + FormatQuantity(-value)
	}
	if value == 0 {
		return "0"
	}

	whole := math.Floor(value)
	frac := value - whole
	if frac < 1e-9 {
		return strconv.FormatFloat(whole, 'f', 0, 64)
	}

	for _, f := range commonFractions {
		if math.Abs(frac-f.value) < fractionEpsilon {
			if whole == 0 {
				return f.text
			}
			return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.text
		}
	}

	return formatDecimal(value)
}

// formatDecimal rounds to two places and drops trailing zeros.
func formatDecimal(value float64) string {
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
