// Package matrix assembles parsed survey data into a dense species x plot matrix.
package matrix

import (
	"sort"

	"species-matrix/internal/model"
	"species-matrix/internal/natsort"
)

// Matrix is an immutable species x plot abundance table.
// Species are sorted by code point and plots in natural order; absent pairs hold 0.
type Matrix struct {
	species []string
	plots   []string
	values  [][]float64
	index   map[string]int
	plotIdx map[string]int
}

// Row is one species line of the matrix
type Row struct {
	Species string
	Values  []float64 // Aligned with Plots()
}

// Lookup returns the count for a species in a plot
type Lookup func(species, plot string) float64

// Build sorts and deduplicates the species and plot universes and fills every cell from lookup
func Build(species, plots []string, lookup Lookup) *Matrix {
	m := &Matrix{
		species: unique(species),
		plots:   unique(plots),
	}
	sort.Strings(m.species)
	natsort.Sort(m.plots)

	m.index = make(map[string]int, len(m.species))
	for i, s := range m.species {
		m.index[s] = i
	}
	m.plotIdx = make(map[string]int, len(m.plots))
	for j, p := range m.plots {
		m.plotIdx[p] = j
	}

	m.values = make([][]float64, len(m.species))
	for i, s := range m.species {
		row := make([]float64, len(m.plots))
		for j, p := range m.plots {
			row[j] = lookup(s, p)
		}
		m.values[i] = row
	}
	return m
}

// Assemble builds the matrix of a sequential-block parse
func Assemble(data model.PlotData) *Matrix {
	return Build(data.Species(), data.Plots(), func(species, plot string) float64 {
		return data.Count(plot, species)
	})
}

// MergeTables builds the matrix of a grid parse.
// For each pair the first table, in anchor order, whose header lists the plot supplies the value;
// a table that lists the plot but not the species yields 0 and ends the search.
func MergeTables(tables []model.SubTable) *Matrix {
	var species, plots []string
	for i := range tables {
		species = append(species, tables[i].Species...)
		plots = append(plots, tables[i].Plots...)
	}

	return Build(species, plots, func(s, p string) float64 {
		for i := range tables {
			col := tables[i].PlotIndex(p)
			if col < 0 {
				continue
			}
			values, ok := tables[i].Values[s]
			if !ok || col >= len(values) {
				return 0
			}
			return values[col]
		}
		return 0
	})
}

// Species returns a copy of the sorted species names
func (m *Matrix) Species() []string {
	return append([]string(nil), m.species...)
}

// Plots returns a copy of the naturally sorted plot identifiers
func (m *Matrix) Plots() []string {
	return append([]string(nil), m.plots...)
}

// Len returns the number of species rows
func (m *Matrix) Len() int {
	return len(m.species)
}

// Width returns the number of plot columns
func (m *Matrix) Width() int {
	return len(m.plots)
}

// Header returns the header row: the species column label followed by the plots
func (m *Matrix) Header(label string) []string {
	header := make([]string, 0, len(m.plots)+1)
	header = append(header, label)
	return append(header, m.plots...)
}

// Rows returns a copy of every species row
func (m *Matrix) Rows() []Row {
	rows := make([]Row, len(m.species))
	for i, s := range m.species {
		rows[i] = Row{Species: s, Values: append([]float64(nil), m.values[i]...)}
	}
	return rows
}

// At returns the value at row i, column j
func (m *Matrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Value returns the count of a species in a plot, or 0 when either is unknown
func (m *Matrix) Value(species, plot string) float64 {
	i, ok := m.index[species]
	if !ok {
		return 0
	}
	j, ok := m.plotIdx[plot]
	if !ok {
		return 0
	}
	return m.values[i][j]
}

// NonZero counts the cells holding an observation
func (m *Matrix) NonZero() int {
	n := 0
	for _, row := range m.values {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func unique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
