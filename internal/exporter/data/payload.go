// Package data renders the matrix in machine-readable formats.
package data

import (
	"species-matrix/internal/coerce"
	"species-matrix/internal/exporter/common"
)

// Payload is the structured form of a matrix document
type Payload struct {
	Source    string       `json:"source"`
	Generated string       `json:"generated,omitempty"`
	Layout    string       `json:"layout,omitempty"`
	Label     string       `json:"species_label"`
	Plots     []string     `json:"plots"`
	Rows      []PayloadRow `json:"rows"`
	Summary   Stats        `json:"summary"`
}

// PayloadRow is one species with values aligned to Plots
type PayloadRow struct {
	Species string    `json:"species"`
	Values  []float64 `json:"values"`
}

// Stats mirrors the run summary
type Stats struct {
	Species  int `json:"species"`
	Plots    int `json:"plots"`
	Records  int `json:"records"`
	Tables   int `json:"tables,omitempty"`
	Warnings int `json:"warnings,omitempty"`
}

// NewPayload converts a document
func NewPayload(doc *common.Document) Payload {
	m := doc.Matrix
	p := Payload{
		Source:    doc.Source,
		Generated: doc.Date(),
		Layout:    string(doc.Summary.Layout),
		Label:     doc.HeaderLabel,
		Plots:     m.Plots(),
		Rows:      []PayloadRow{},
		Summary: Stats{
			Species:  m.Len(),
			Plots:    m.Width(),
			Records:  doc.Summary.Records,
			Tables:   doc.Summary.Tables,
			Warnings: doc.Summary.Warnings,
		},
	}
	for _, r := range m.Rows() {
		p.Rows = append(p.Rows, PayloadRow{Species: r.Species, Values: r.Values})
	}
	return p
}

// compact flattens the payload into the tabular map shape TOON encodes as rows
func compact(doc *common.Document) map[string]interface{} {
	m := doc.Matrix
	header := doc.Header()

	rows := make([]map[string]interface{}, 0, m.Len())
	for _, r := range m.Rows() {
		row := make(map[string]interface{}, len(r.Values)+1)
		row[header[0]] = r.Species
		for j, v := range r.Values {
			if coerce.IsIntegral(v) {
				row[header[j+1]] = int64(v)
			} else {
				row[header[j+1]] = v
			}
		}
		rows = append(rows, row)
	}

	return map[string]interface{}{
		"source":  doc.Source,
		"layout":  string(doc.Summary.Layout),
		"species": m.Len(),
		"plots":   m.Plots(),
		"records": doc.Summary.Records,
		"matrix":  rows,
	}
}
