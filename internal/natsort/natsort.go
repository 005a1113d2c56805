// Package natsort orders plot identifiers the way people number plots:
// "1-2-2" before "1-2-10", "P9" before "P10".
package natsort

import (
	"sort"
	"strings"
)

// Compare returns -1, 0 or +1 comparing a and b in natural order.
//
// Dash-delimited all-numeric identifiers ("1-2-10") compare as integer tuples.
// Everything else is split into digit and non-digit runs: digit runs compare
// numerically, other runs case-insensitively, and a digit run sorts before text.
// Identifiers that are equal under these rules fall back to byte order so the
// result is total and deterministic.
func Compare(a, b string) int {
	if ta, ok := Tuple(a); ok {
		if tb, ok := Tuple(b); ok {
			if c := compareParts(ta, tb); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		}
	}

	if c := compareChunks(chunks(a), chunks(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts identifiers in place in natural order
func Sort(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return Less(ids[i], ids[j])
	})
}

// Sorted returns a naturally sorted copy
func Sorted(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	Sort(out)
	return out
}

// Tuple splits a clean dash-delimited integer identifier into its digit parts.
// ok is false for anything else ("1-a", "-1", "1--2", "A1").
func Tuple(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, "-")
	for _, p := range parts {
		if p == "" || !allDigits(p) {
			return nil, false
		}
	}
	return parts, true
}

type chunk struct {
	text  string
	digit bool
}

// chunks splits s into alternating digit / non-digit runs
func chunks(s string) []chunk {
	var out []chunk
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || (i > start && isDigit(s[i]) != isDigit(s[start])) {
			if i > start {
				out = append(out, chunk{text: s[start:i], digit: isDigit(s[start])})
			}
			start = i
		}
	}
	return out
}

func compareChunks(a, b []chunk) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := a[i], b[i]
		switch {
		case ca.digit && cb.digit:
			if c := compareDigits(ca.text, cb.text); c != 0 {
				return c
			}
		case ca.digit:
			return -1
		case cb.digit:
			return 1
		default:
			if c := strings.Compare(strings.ToLower(ca.text), strings.ToLower(cb.text)); c != 0 {
				return c
			}
		}
	}
	return compareLen(len(a), len(b))
}

func compareParts(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareDigits(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareLen(len(a), len(b))
}

// compareDigits compares two ASCII digit strings numerically without overflow
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := compareLen(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareLen(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
