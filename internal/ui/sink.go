package ui

import (
	"sync"

	"species-matrix/internal/logger"
)

// phaseSpan is the percent range a phase covers
type phaseSpan struct {
	phase      Phase
	start, end int
}

// convertSpans maps the processor's 0..100 scale onto the conversion phases
var convertSpans = []phaseSpan{
	{PhaseReading, 0, 10},
	{PhaseParsing, 10, 80},
	{PhaseAssembling, 80, 95},
	{PhaseWriting, 95, 100},
}

// Sink routes run events to the logger and the progress pipeline
type Sink struct {
	mu       sync.Mutex
	input    string
	pipeline *Pipeline
	bar      *ProgressBar
	span     int
}

// NewSink creates a sink for one input file; pipeline may be nil
func NewSink(input string, pipeline *Pipeline) *Sink {
	return &Sink{input: input, pipeline: pipeline, span: -1}
}

// Log forwards a message to the global logger
func (s *Sink) Log(level logger.Level, msg string) {
	logger.Log(level, "%s", msg)
}

// Issue records a non-fatal row problem in the log file
func (s *Sink) Issue(row int, err error) {
	logger.LogRowIssue(s.input, row, err)
}

// Progress advances the pipeline to the phase containing percent
func (s *Sink) Progress(percent int, label string) {
	if s.pipeline == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := spanFor(percent)
	for s.span < target {
		s.span++
		sp := convertSpans[s.span]
		s.bar = s.pipeline.NextPhase(sp.end - sp.start)
	}
	if s.bar == nil {
		return
	}

	sp := convertSpans[s.span]
	s.bar.Set(percent - sp.start)
	if label != "" {
		s.bar.Describe(label)
	}
}

// Finish closes the last bar
func (s *Sink) Finish() {
	if s.pipeline != nil {
		s.pipeline.Finish()
	}
}

func spanFor(percent int) int {
	for i, sp := range convertSpans {
		if percent < sp.end {
			return i
		}
	}
	return len(convertSpans) - 1
}
