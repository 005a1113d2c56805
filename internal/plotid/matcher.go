// Package plotid recognizes plot identifiers in plot header rows.
//
// Matchers are tried in a fixed priority order and the first hit wins:
// dash-triplet, dash-pair and bare-integer on the header label cell,
// then the literal text of the cell next to it.
package plotid

import (
	"regexp"

	"species-matrix/internal/model"
)

// Matcher extracts a plot identifier from a single cell
type Matcher struct {
	Name  string
	Match func(c model.Cell) (string, bool)
}

var (
	dashTriplet = regexp.MustCompile(`[0-9]+-[0-9]+-[0-9]+`)
	dashPair    = regexp.MustCompile(`[0-9]+-[0-9]+`)
	bareInteger = regexp.MustCompile(`[0-9]+`)
)

// Named matchers
var (
	DashTriplet = regexpMatcher("dash-triplet", dashTriplet)
	DashPair    = regexpMatcher("dash-pair", dashPair)
	BareInteger = regexpMatcher("bare-integer", bareInteger)
	Literal     = Matcher{Name: "literal-text", Match: literal}
)

// LabelMatchers are applied to the header label cell, in order
var LabelMatchers = []Matcher{DashTriplet, DashPair, BareInteger}

// Result describes a recognized identifier
type Result struct {
	ID      string
	Matcher string
}

// Extract finds the plot identifier of a header row.
// label is the cell holding the plot marker; next is the cell to its right.
func Extract(label, next model.Cell) (Result, bool) {
	if label.IsText() {
		for _, m := range LabelMatchers {
			if id, ok := m.Match(label); ok {
				return Result{ID: id, Matcher: m.Name}, true
			}
		}
	}

	if id, ok := Literal.Match(next); ok {
		return Result{ID: id, Matcher: Literal.Name}, true
	}
	return Result{}, false
}

func regexpMatcher(name string, re *regexp.Regexp) Matcher {
	return Matcher{
		Name: name,
		Match: func(c model.Cell) (string, bool) {
			if !c.IsText() {
				return "", false
			}
			id := re.FindString(c.Text)
			return id, id != ""
		},
	}
}

// literal accepts any non-blank cell; numbers render without a trailing ".0"
func literal(c model.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	return c.Trimmed(), true
}
