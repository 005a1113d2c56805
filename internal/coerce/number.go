// Package coerce turns loosely typed count cells into numbers.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"species-matrix/internal/model"
)

// leadingNumber matches the first run of digits with an optional decimal part
var leadingNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseNumber parses free text into a number.
// Full-width digits and punctuation are folded to ASCII, then it tries a direct
// float parse and finally the first digit run inside the text.
// Non-finite results are rejected.
func ParseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(width.Fold.String(text))
	if s == "" {
		return 0, false
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}

	match := leadingNumber.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Value coerces a cell into a count.
// ok is false when the cell is empty, unparseable, negative or non-finite;
// callers apply their own default in that case.
func Value(c model.Cell) (float64, bool) {
	var v float64
	switch c.Kind {
	case model.CellNumber:
		v = c.Number
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
	case model.CellText:
		parsed, ok := ParseNumber(c.Text)
		if !ok {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}

	if v < 0 {
		return 0, false
	}
	return v, true
}

// CountOrZero applies the zero default to Value
func CountOrZero(c model.Cell) float64 {
	v, ok := Value(c)
	if !ok {
		return 0
	}
	return v
}

// Format renders a count; integral values have no decimal point
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsIntegral reports whether v has no fractional part
func IsIntegral(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}
