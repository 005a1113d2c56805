// Package inspect describes how a survey sheet will be understood before converting it:
// the layout that would be picked, every plot header and table anchor, and a preview.
package inspect

import (
	"species-matrix/internal/model"
	"species-matrix/internal/parser"
	"species-matrix/internal/plotid"
	"species-matrix/internal/reader"
)

const (
	DefaultRows = 50
	DefaultCols = 20
)

// Options configures an inspection
type Options struct {
	Rows   int // Preview rows
	Cols   int // Preview columns
	Reader reader.Options
	Parser parser.Options
}

// HeaderHit is a row the sequential parser treats as a plot header
type HeaderHit struct {
	Row        int    `json:"row"` // 1-based
	Text       string `json:"text"`
	ID         string `json:"id,omitempty"`
	Matcher    string `json:"matcher,omitempty"`
	Recognized bool   `json:"recognized"`
}

// AnchorHit is a grid table anchor with its plot header
type AnchorHit struct {
	Row   int      `json:"row"` // 1-based
	Col   int      `json:"col"` // 1-based
	Plots []string `json:"plots"`
}

// Report is the structure of one sheet
type Report struct {
	Source      string                `json:"source"`
	Sheet       string                `json:"sheet"`
	Format      string                `json:"format"`
	Rows        int                   `json:"rows"`
	Cols        int                   `json:"cols"`
	Layout      model.Layout          `json:"layout"`
	Evidence    parser.LayoutEvidence `json:"evidence"`
	PlotHeaders []HeaderHit           `json:"plot_headers"`
	Anchors     []AnchorHit           `json:"anchors"`
	Preview     [][]string            `json:"preview"`
	Truncated   bool                  `json:"truncated"` // Preview is smaller than the sheet
}

// Inspect loads the file at path and analyzes its first sheet
func Inspect(path string, opts Options) (*Report, error) {
	sheet, err := reader.Load(path, opts.Reader)
	if err != nil {
		return nil, err
	}
	return Analyze(sheet, opts), nil
}

// Analyze describes an already loaded sheet
func Analyze(sheet *reader.Sheet, opts Options) *Report {
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	popts := opts.Parser
	if popts.PlotMarker == "" {
		popts.PlotMarker = parser.DefaultPlotMarker
	}
	if popts.AnchorLabel == "" {
		popts.AnchorLabel = parser.DefaultAnchorLabel
	}

	grid := sheet.Grid
	r := &Report{
		Source: sheet.Source,
		Sheet:  sheet.Name,
		Format: sheet.Format,
		Rows:   len(grid),
		Cols:   grid.Width(),
	}
	r.Layout, r.Evidence = parser.DetectLayout(grid, popts)

	for i := range grid {
		first := grid.At(i, 0)
		if !parser.IsPlotHeader(first, popts.PlotMarker) {
			continue
		}
		hit := HeaderHit{Row: i + 1, Text: first.Trimmed()}
		if id, ok := plotid.Extract(first, grid.At(i, 1)); ok {
			hit.ID, hit.Matcher, hit.Recognized = id.ID, id.Matcher, true
		}
		r.PlotHeaders = append(r.PlotHeaders, hit)
	}

	for _, a := range parser.FindAnchors(grid, popts.AnchorLabel) {
		r.Anchors = append(r.Anchors, AnchorHit{
			Row:   a.Row + 1,
			Col:   a.Col + 1,
			Plots: parser.HeaderRow(grid, a)[1:],
		})
	}

	rows := min(opts.Rows, len(grid))
	cols := min(opts.Cols, r.Cols)
	r.Truncated = rows < len(grid) || cols < r.Cols
	for i := 0; i < rows; i++ {
		line := make([]string, cols)
		for j := range line {
			line[j] = grid.At(i, j).Trimmed()
		}
		r.Preview = append(r.Preview, line)
	}

	return r
}

// Unrecognized returns the plot headers without a usable identifier
func (r *Report) Unrecognized() []HeaderHit {
	var out []HeaderHit
	for _, h := range r.PlotHeaders {
		if !h.Recognized {
			out = append(out, h)
		}
	}
	return out
}
