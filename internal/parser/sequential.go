package parser

import (
	"context"
	"strings"

	"species-matrix/internal/coerce"
	"species-matrix/internal/logger"
	"species-matrix/internal/model"
	"species-matrix/internal/plotid"
)

// SequentialResult is the outcome of a sequential-block parse
type SequentialResult struct {
	Data      model.PlotData
	PlotOrder []string // Plots in the order their headers appeared
	Records   int      // Species rows read
	Warnings  int      // Unrecognized plot headers
}

// ParseSequential reads a sheet where every plot is a block:
// a header row whose first cell contains the plot marker, then one species/count row per line.
//
// Cancellation is checked before each row; a cancelled run returns ErrCancelled and no data.
func ParseSequential(ctx context.Context, grid model.Grid, opts Options, events Events) (*SequentialResult, error) {
	opts = opts.withDefaults()
	ev := Monotonic(events)
	span := newRowSpan(ev, opts.ProgressStart, opts.ProgressEnd)

	res := &SequentialResult{Data: model.NewPlotData()}
	totalRows := len(grid)
	currentPlot := ""
	havePlot := false

	for i := range grid {
		if ctx.Err() != nil {
			logf(ev, logger.LevelInfo, "Processing interrupted at row %d", i+1)
			return nil, ErrCancelled
		}

		processed := i + 1
		if grid.RowEmpty(i) {
			continue
		}
		span.rows(processed, totalRows)

		first := grid.At(i, 0)

		if IsPlotHeader(first, opts.PlotMarker) {
			id, ok := plotid.Extract(first, grid.At(i, 1))
			if !ok {
				res.Warnings++
				herr := &HeaderError{Row: processed, Text: first.Trimmed()}
				logf(ev, logger.LevelWarn, "%v", herr)
				reportIssue(ev, processed, herr)
				continue
			}

			if _, seen := res.Data[id.ID]; !seen {
				res.Data.AddPlot(id.ID)
				res.PlotOrder = append(res.PlotOrder, id.ID)
			}
			currentPlot = id.ID
			havePlot = true
			logf(ev, logger.LevelInfo, "Found plot: %s", id.ID)
			logf(ev, logger.LevelDebug, "Row %d: plot id matched by %s", processed, id.Matcher)
			continue
		}

		if !havePlot || !first.IsText() {
			continue
		}
		species := strings.TrimSpace(first.Text)
		if species == "" {
			continue
		}

		countCell := grid.At(i, 1)
		count, ok := coerce.Value(countCell)
		if !ok {
			count = 0
			if !countCell.IsEmpty() {
				logf(ev, logger.LevelDebug, "Row %d: count %q for %s is not a number, using 0", processed, countCell.Trimmed(), species)
			}
		}
		res.Records++

		held, existed := res.Data.Record(currentPlot, species, count, opts.Policy)
		switch {
		case !existed:
			logf(ev, logger.LevelDebug, "  Added species: %s = %s", species, coerce.Format(held))
		case opts.Policy == model.PolicyKeepFirst:
			logf(ev, logger.LevelDebug, "  Duplicate species ignored: %s (kept %s, skipped %s)", species, coerce.Format(held), coerce.Format(count))
		default:
			logf(ev, logger.LevelDebug, "  Accumulated species: %s + %s = %s", species, coerce.Format(count), coerce.Format(held))
		}
	}

	if !havePlot {
		return nil, ErrNoPlotFound
	}

	span.finish("Parsing complete")
	logf(ev, logger.LevelInfo, "Parsed %d plots and %d species records", len(res.Data), res.Records)
	return res, nil
}

// IsPlotHeader reports whether the first cell of a row opens a plot block
func IsPlotHeader(first model.Cell, marker string) bool {
	return first.IsText() && strings.Contains(first.Text, marker)
}
