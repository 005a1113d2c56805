package parser

import (
	"species-matrix/internal/model"
)

// LayoutEvidence records what layout detection saw in a sheet
type LayoutEvidence struct {
	PlotHeaders int // Rows whose first cell contains the plot marker
	Anchors     int // Cells exactly equal to the anchor label
}

// DetectLayout picks the parser for a sheet.
// Plot header rows win because the grid anchor label is usually a substring of the plot
// marker; a sheet with neither goes to the sequential parser, which reports ErrNoPlotFound.
func DetectLayout(grid model.Grid, opts Options) (model.Layout, LayoutEvidence) {
	opts = opts.withDefaults()

	var ev LayoutEvidence
	for i := range grid {
		if IsPlotHeader(grid.At(i, 0), opts.PlotMarker) {
			ev.PlotHeaders++
		}
	}
	ev.Anchors = len(FindAnchors(grid, opts.AnchorLabel))

	switch {
	case ev.PlotHeaders > 0:
		return model.LayoutSequential, ev
	case ev.Anchors > 0:
		return model.LayoutGrid, ev
	default:
		return model.LayoutSequential, ev
	}
}
