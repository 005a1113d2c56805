package model

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when a species is recorded twice for one plot
type DuplicatePolicy string

const (
	// PolicySum adds repeated observations together
	PolicySum DuplicatePolicy = "sum"
	// PolicyKeepFirst keeps the first observation and ignores later ones
	PolicyKeepFirst DuplicatePolicy = "keep_first"
)

// ParseDuplicatePolicy converts a configuration value into a DuplicatePolicy
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sum":
		return PolicySum, nil
	case "keep_first", "keep-first", "first":
		return PolicyKeepFirst, nil
	default:
		return "", fmt.Errorf("unknown duplicate species policy: %q (want sum or keep_first)", s)
	}
}

// Layout identifies which of the two supported input layouts a sheet uses
type Layout string

const (
	LayoutAuto       Layout = "auto"
	LayoutSequential Layout = "sequential"
	LayoutGrid       Layout = "grid"
)

// ParseLayout converts a configuration value into a Layout
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LayoutAuto, nil
	case "sequential", "block", "blocks":
		return LayoutSequential, nil
	case "grid", "table", "tables":
		return LayoutGrid, nil
	default:
		return "", fmt.Errorf("unknown layout: %q (want auto, sequential or grid)", s)
	}
}

// PlotData maps plot identifier -> species name -> aggregated count
type PlotData map[string]map[string]float64

// NewPlotData creates an empty PlotData
func NewPlotData() PlotData {
	return make(PlotData)
}

// AddPlot registers a plot without any species
func (p PlotData) AddPlot(plot string) {
	if _, ok := p[plot]; !ok {
		p[plot] = make(map[string]float64)
	}
}

// Record stores one observation under the given policy.
// It returns the count now held for the species and whether the entry already existed.
func (p PlotData) Record(plot, species string, count float64, policy DuplicatePolicy) (float64, bool) {
	p.AddPlot(plot)
	counts := p[plot]

	existing, ok := counts[species]
	if !ok {
		counts[species] = count
		return count, false
	}

	if policy == PolicyKeepFirst {
		return existing, true
	}

	counts[species] = existing + count
	return counts[species], true
}

// Plots returns the plot identifiers in unspecified order
func (p PlotData) Plots() []string {
	plots := make([]string, 0, len(p))
	for plot := range p {
		plots = append(plots, plot)
	}
	return plots
}

// Species returns the distinct species names across all plots in unspecified order
func (p PlotData) Species() []string {
	seen := make(map[string]bool)
	var species []string
	for _, counts := range p {
		for name := range counts {
			if !seen[name] {
				seen[name] = true
				species = append(species, name)
			}
		}
	}
	return species
}

// Count returns the recorded count, or 0 if the pair was never observed
func (p PlotData) Count(plot, species string) float64 {
	return p[plot][species]
}

// CellRef is a zero-based sheet coordinate
type CellRef struct {
	Row int
	Col int
}

// SubTable is one independent grid table found under a species anchor
type SubTable struct {
	Index   int                  // Anchor order, starting at 0
	Anchor  CellRef              // Position of the species anchor cell
	Plots   []string             // Plot identifiers, excluding the species header
	Species []string             // Species names in first-seen order
	Values  map[string][]float64 // Species -> values aligned with Plots
}

// PlotIndex returns the first column index of the plot, or -1
func (t *SubTable) PlotIndex(plot string) int {
	for i, p := range t.Plots {
		if p == plot {
			return i
		}
	}
	return -1
}

// Empty reports whether no species rows were extracted
func (t *SubTable) Empty() bool {
	return len(t.Values) == 0
}
