package parser

import (
	"fmt"

	"species-matrix/internal/logger"
)

// Events receives log lines and progress updates from a run.
// Calls are made synchronously from the goroutine doing the parse.
type Events interface {
	Log(level logger.Level, msg string)
	Progress(percent int, label string)
}

// EventFuncs adapts plain callbacks to Events; nil callbacks are skipped
type EventFuncs struct {
	OnLog      func(level logger.Level, msg string)
	OnProgress func(percent int, label string)
}

func (f EventFuncs) Log(level logger.Level, msg string) {
	if f.OnLog != nil {
		f.OnLog(level, msg)
	}
}

func (f EventFuncs) Progress(percent int, label string) {
	if f.OnProgress != nil {
		f.OnProgress(percent, label)
	}
}

// IssueSink is optionally implemented by Events to receive non-fatal row problems
type IssueSink interface {
	Issue(row int, err error)
}

func reportIssue(ev Events, row int, err error) {
	if s, ok := ev.(IssueSink); ok {
		s.Issue(row, err)
	}
}

// Discard drops every event
var Discard Events = EventFuncs{}

func logf(ev Events, level logger.Level, format string, args ...interface{}) {
	ev.Log(level, fmt.Sprintf(format, args...))
}
