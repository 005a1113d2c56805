package parser

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoPlotFound indicates the sequential parser never recognized a plot header
	ErrNoPlotFound = errors.New("no plot data found, check that plot header rows contain the plot marker")

	// ErrNoHeaderFound indicates the grid parser found no species anchor cell
	ErrNoHeaderFound = errors.New("no species header found, check that each table starts with the species label")

	// ErrNoDataExtracted indicates every grid sub-table was empty
	ErrNoDataExtracted = errors.New("no data could be extracted from the species tables")

	// ErrCancelled is returned when the caller stopped the run.
	// It is an outcome, not a failure: nothing is written and partial data is discarded.
	ErrCancelled = errors.New("processing cancelled")
)

// HeaderError describes a row that looked like a plot header but carried no usable identifier.
// It is never fatal: the row is skipped and the current plot is kept.
type HeaderError struct {
	Row  int    // 1-based sheet row
	Text string // Content of the label cell
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("row %d: cannot recognize plot header %q, keeping the current plot", e.Row, e.Text)
}

// IsCancelled reports whether err is a cancellation outcome
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsStructural reports whether err means the sheet has no usable layout
func IsStructural(err error) bool {
	return errors.Is(err, ErrNoPlotFound) || errors.Is(err, ErrNoHeaderFound) || errors.Is(err, ErrNoDataExtracted)
}
