package parser

import (
	"context"
	"strings"

	"species-matrix/internal/coerce"
	"species-matrix/internal/logger"
	"species-matrix/internal/model"
)

// GridResult is the outcome of a grid-table parse
type GridResult struct {
	Tables    []model.SubTable // Non-empty sub-tables in anchor order
	Anchors   int              // Anchors found, including empty tables
	Records   int              // Species rows read
	Truncated int              // Species names cut at the first space
	Warnings  int              // Tables skipped because they share a row with the next anchor
}

// FindAnchors returns every cell whose trimmed text equals label, row-major
func FindAnchors(grid model.Grid, label string) []model.CellRef {
	var anchors []model.CellRef
	for r, row := range grid {
		for c, cell := range row {
			if cell.IsText() && strings.TrimSpace(cell.Text) == label {
				anchors = append(anchors, model.CellRef{Row: r, Col: c})
			}
		}
	}
	return anchors
}

// ParseGrid reads a sheet holding several independent tables.
// Each table starts at an anchor cell; the anchor's row lists plot identifiers to its right
// and each following row holds one species with its per-plot counts. A table ends at the
// row of the next anchor or at the end of the sheet.
func ParseGrid(ctx context.Context, grid model.Grid, opts Options, events Events) (*GridResult, error) {
	opts = opts.withDefaults()
	ev := Monotonic(events)
	span := newRowSpan(ev, opts.ProgressStart, opts.ProgressEnd)

	anchors := FindAnchors(grid, opts.AnchorLabel)
	if len(anchors) == 0 {
		return nil, ErrNoHeaderFound
	}
	logf(ev, logger.LevelInfo, "Found %d table anchors", len(anchors))

	res := &GridResult{Anchors: len(anchors)}

	for k, anchor := range anchors {
		end := len(grid)
		if k+1 < len(anchors) {
			end = anchors[k+1].Row
		}

		headers := HeaderRow(grid, anchor)
		table := model.SubTable{
			Index:  k,
			Anchor: anchor,
			Plots:  headers[1:],
			Values: make(map[string][]float64),
		}
		logf(ev, logger.LevelDebug, "Table %d at row %d col %d, plots: %v", k+1, anchor.Row+1, anchor.Col+1, table.Plots)

		for r := anchor.Row + 1; r < end; r++ {
			if ctx.Err() != nil {
				logf(ev, logger.LevelInfo, "Processing interrupted at row %d", r+1)
				return nil, ErrCancelled
			}
			span.rows(r+1, len(grid))

			if grid.RowEmpty(r) {
				continue
			}
			speciesCell := grid.At(r, anchor.Col)
			if speciesCell.IsEmpty() {
				continue
			}

			name, cut := speciesName(speciesCell, !opts.KeepFullNames)
			if cut {
				if res.Truncated == 0 {
					logf(ev, logger.LevelWarn, "Species names are cut at the first space (%q -> %q)", speciesCell.Trimmed(), name)
				}
				res.Truncated++
			}

			values := make([]float64, len(table.Plots))
			for j := range values {
				values[j] = coerce.CountOrZero(grid.At(r, anchor.Col+1+j))
			}
			res.Records++

			existing, ok := table.Values[name]
			if !ok {
				table.Values[name] = values
				table.Species = append(table.Species, name)
				continue
			}
			if opts.Policy == model.PolicyKeepFirst {
				logf(ev, logger.LevelDebug, "Table %d row %d: duplicate species %s ignored", k+1, r+1, name)
				continue
			}
			for j := range existing {
				existing[j] += values[j]
			}
			logf(ev, logger.LevelDebug, "Table %d row %d: duplicate species %s accumulated", k+1, r+1, name)
		}

		if table.Empty() {
			if end <= anchor.Row {
				res.Warnings++
				logf(ev, logger.LevelWarn, "Table %d at row %d col %d shares its row with the next table and has no body rows, skipped", k+1, anchor.Row+1, anchor.Col+1)
			} else {
				logf(ev, logger.LevelDebug, "Table %d has no species rows, skipped", k+1)
			}
			continue
		}
		logf(ev, logger.LevelInfo, "Table %d: %d species x %d plots", k+1, len(table.Species), len(table.Plots))
		res.Tables = append(res.Tables, table)
	}

	if len(res.Tables) == 0 {
		return nil, ErrNoDataExtracted
	}

	span.finish("Parsing complete")
	return res, nil
}

// HeaderRow collects consecutive non-blank cells rightward from the anchor.
// The first entry is the anchor itself.
func HeaderRow(grid model.Grid, anchor model.CellRef) []string {
	var headers []string
	for c := anchor.Col; ; c++ {
		cell := grid.At(anchor.Row, c)
		if cell.IsEmpty() {
			break
		}
		headers = append(headers, cell.Trimmed())
	}
	return headers
}

// speciesName returns the species name of a body row.
// With truncate set, a name containing a space keeps only its first token.
func speciesName(c model.Cell, truncate bool) (string, bool) {
	raw := c.String()
	if truncate && strings.Contains(raw, " ") {
		name := strings.Fields(raw)[0]
		return name, name != strings.TrimSpace(raw)
	}
	return strings.TrimSpace(raw), false
}
