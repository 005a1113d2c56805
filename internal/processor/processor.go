// Package processor runs one conversion: read the input, pick the layout, parse,
// assemble the matrix and write every requested rendering.
package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"species-matrix/internal/config"
	"species-matrix/internal/exporter"
	"species-matrix/internal/exporter/common"
	"species-matrix/internal/logger"
	"species-matrix/internal/matrix"
	"species-matrix/internal/model"
	"species-matrix/internal/parser"
	"species-matrix/internal/reader"
)

// Stage boundaries on the 0..100 progress scale
const (
	ProgressStart     = 0
	ProgressReading   = 5
	ProgressRead      = 10
	ProgressAssembled = 85
	ProgressWriting   = 95
	ProgressDone      = 100
)

// Options configures a run
type Options struct {
	Reader      reader.Options
	Parser      parser.Options
	Layout      model.Layout
	Formats     []string
	Paths       exporter.PathOptions
	HeaderLabel string
	SheetName   string
	AutoWidth   bool
	Now         func() time.Time
}

// Result is the outcome of a successful run
type Result struct {
	Matrix  *matrix.Matrix
	Summary model.Summary
	Outputs []string // Written files, in format order
}

// OptionsFromConfig converts a validated configuration
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	ropts, err := cfg.ReaderOptions()
	if err != nil {
		return Options{}, err
	}
	popts, err := cfg.ParserOptions()
	if err != nil {
		return Options{}, err
	}
	layout, err := model.ParseLayout(cfg.Parser.Layout)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Reader:      ropts,
		Parser:      popts,
		Layout:      layout,
		Formats:     cfg.Output.Formats,
		Paths:       cfg.PathOptions(),
		HeaderLabel: cfg.Output.HeaderLabel,
		SheetName:   cfg.Output.SheetName,
		AutoWidth:   cfg.Output.AutoWidth,
	}, nil
}

// Run converts the file at input.
// A cancelled context yields parser.ErrCancelled and leaves no output behind.
func Run(ctx context.Context, input string, opts Options, events parser.Events) (*Result, error) {
	ev := parser.Monotonic(events)

	// Resolve exporters before touching the input so a bad format fails fast
	exporters, err := exporter.GetExporters(opts.Formats)
	if err != nil {
		return nil, err
	}

	ev.Progress(ProgressReading, "Reading input")
	logEvent(ev, logger.LevelInfo, "Reading %s", input)
	sheet, err := reader.Load(input, opts.Reader)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, parser.ErrCancelled
	}
	ev.Progress(ProgressRead, fmt.Sprintf("Loaded %d rows", len(sheet.Grid)))
	logEvent(ev, logger.LevelInfo, "Loaded sheet %q: %d rows", sheet.Name, len(sheet.Grid))

	m, summary, err := Convert(ctx, sheet.Grid, opts, ev)
	if err != nil {
		return nil, err
	}
	ev.Progress(ProgressAssembled, "Matrix assembled")

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	doc := &common.Document{
		Matrix:      m,
		Summary:     summary,
		Source:      sheet.Source,
		HeaderLabel: opts.HeaderLabel,
		SheetName:   opts.SheetName,
		AutoWidth:   opts.AutoWidth,
		Generated:   now(),
	}
	if doc.HeaderLabel == "" {
		doc.HeaderLabel = parser.DefaultAnchorLabel
	}
	if doc.SheetName == "" {
		doc.SheetName = exporter.DefaultSheetName
	}

	ev.Progress(ProgressWriting, "Writing output")
	outputs, err := write(ctx, doc, input, opts.Paths, exporters, ev)
	if err != nil {
		return nil, err
	}

	ev.Progress(ProgressDone, "Done")
	return &Result{Matrix: m, Summary: summary, Outputs: outputs}, nil
}

// Convert detects the layout of grid, parses it and assembles the matrix
func Convert(ctx context.Context, grid model.Grid, opts Options, events parser.Events) (*matrix.Matrix, model.Summary, error) {
	ev := parser.Monotonic(events)
	summary := model.Summary{Rows: len(grid)}

	layout := opts.Layout
	if layout == "" || layout == model.LayoutAuto {
		var evidence parser.LayoutEvidence
		layout, evidence = parser.DetectLayout(grid, opts.Parser)
		logEvent(ev, logger.LevelInfo, "Detected %s layout (%d plot headers, %d table anchors)",
			layout, evidence.PlotHeaders, evidence.Anchors)
	}
	summary.Layout = layout

	var m *matrix.Matrix
	switch layout {
	case model.LayoutGrid:
		res, err := parser.ParseGrid(ctx, grid, opts.Parser, ev)
		if err != nil {
			return nil, summary, err
		}
		m = matrix.MergeTables(res.Tables)
		summary.Records = res.Records
		summary.Tables = len(res.Tables)
		summary.Warnings = res.Truncated + res.Warnings
	default:
		res, err := parser.ParseSequential(ctx, grid, opts.Parser, ev)
		if err != nil {
			return nil, summary, err
		}
		m = matrix.Assemble(res.Data)
		summary.Records = res.Records
		summary.Warnings = res.Warnings
	}

	if ctx.Err() != nil {
		return nil, summary, parser.ErrCancelled
	}

	summary.Species = m.Len()
	summary.Plots = m.Width()
	logEvent(ev, logger.LevelInfo, "Found %d unique species", summary.Species)
	logEvent(ev, logger.LevelInfo, "Found %d plots", summary.Plots)
	logEvent(ev, logger.LevelInfo, "Processed %d raw records", summary.Records)
	return m, summary, nil
}

// write runs every exporter; on failure or cancellation the files already written are removed
func write(ctx context.Context, doc *common.Document, input string, paths exporter.PathOptions, exporters []exporter.Exporter, ev parser.Events) ([]string, error) {
	var outputs []string
	rollback := func() {
		for _, p := range outputs {
			os.Remove(p)
		}
	}

	for _, exp := range exporters {
		if ctx.Err() != nil {
			rollback()
			return nil, parser.ErrCancelled
		}

		path := exporter.OutputPath(input, paths, exp.Extension())
		if err := exp.Export(doc, path); err != nil {
			rollback()
			return nil, fmt.Errorf("%s export failed: %w", exp.Format(), err)
		}
		outputs = append(outputs, path)
		logEvent(ev, logger.LevelInfo, "Saved %s output: %s", exp.Format(), path)
	}
	return outputs, nil
}

// IsFailure reports whether err is a real failure rather than a cancellation
func IsFailure(err error) bool {
	return err != nil && !parser.IsCancelled(err)
}

// Describe returns a user-facing explanation for structural errors
func Describe(err error) string {
	switch {
	case errors.Is(err, parser.ErrNoPlotFound):
		return "No plot data found. Make sure plot header rows contain the plot marker (物种名称)."
	case errors.Is(err, parser.ErrNoHeaderFound):
		return "No species table found. Make sure each table starts with a cell reading exactly 物种."
	case errors.Is(err, parser.ErrNoDataExtracted):
		return "Species tables were found but none contained data."
	case errors.Is(err, reader.ErrUnsupportedFormat):
		return "Unsupported input file. Use an .xlsx or .csv file."
	default:
		return err.Error()
	}
}

func logEvent(ev parser.Events, level logger.Level, format string, args ...interface{}) {
	ev.Log(level, fmt.Sprintf(format, args...))
}
