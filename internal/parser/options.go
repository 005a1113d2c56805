package parser

import "species-matrix/internal/model"

const (
	// DefaultPlotMarker is the label that opens a plot block ("species name")
	DefaultPlotMarker = "物种名称"
	// DefaultAnchorLabel is the exact header cell that starts a grid table ("species")
	DefaultAnchorLabel = "物种"

	DefaultProgressStart = 10
	DefaultProgressEnd   = 80
)

// Options configures both parsers
type Options struct {
	PlotMarker    string                // Substring marking sequential plot header rows
	AnchorLabel   string                // Exact text of grid table anchors
	Policy        model.DuplicatePolicy // Handling of repeated species within a plot
	KeepFullNames bool                  // Disable grid species truncation at the first space
	ProgressStart int                   // Start of the progress sub-range
	ProgressEnd   int                   // End of the progress sub-range
}

// DefaultOptions returns the markers and progress range of the standard survey sheets
func DefaultOptions() Options {
	return Options{
		PlotMarker:    DefaultPlotMarker,
		AnchorLabel:   DefaultAnchorLabel,
		Policy:        model.PolicySum,
		ProgressStart: DefaultProgressStart,
		ProgressEnd:   DefaultProgressEnd,
	}
}

// withDefaults fills zero values
func (o Options) withDefaults() Options {
	if o.PlotMarker == "" {
		o.PlotMarker = DefaultPlotMarker
	}
	if o.AnchorLabel == "" {
		o.AnchorLabel = DefaultAnchorLabel
	}
	if o.Policy == "" {
		o.Policy = model.PolicySum
	}
	if o.ProgressStart == 0 && o.ProgressEnd == 0 {
		o.ProgressStart = DefaultProgressStart
		o.ProgressEnd = DefaultProgressEnd
	}
	if o.ProgressEnd < o.ProgressStart {
		o.ProgressEnd = o.ProgressStart
	}
	return o
}
