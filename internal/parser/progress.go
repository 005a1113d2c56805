package parser

import (
	"fmt"
	"sync"

	"species-matrix/internal/logger"
)

// progressStep is the minimum advance, in points, between two row progress updates
const progressStep = 5

// monotonic drops progress updates that would move the percentage backwards
type monotonic struct {
	mu     sync.Mutex
	next   Events
	last   int
	primed bool
}

// Monotonic wraps ev so that reported percentages never decrease and stay within 0..100
func Monotonic(ev Events) Events {
	if ev == nil {
		ev = Discard
	}
	if m, ok := ev.(*monotonic); ok {
		return m
	}
	return &monotonic{next: ev}
}

func (m *monotonic) Log(level logger.Level, msg string) {
	m.next.Log(level, msg)
}

func (m *monotonic) Issue(row int, err error) {
	reportIssue(m.next, row, err)
}

func (m *monotonic) Progress(percent int, label string) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	m.mu.Lock()
	if m.primed && percent < m.last {
		m.mu.Unlock()
		return
	}
	m.last = percent
	m.primed = true
	m.mu.Unlock()

	m.next.Progress(percent, label)
}

// rowSpan rescales rows processed into the [start, end] percentage range
type rowSpan struct {
	ev         Events
	start, end int
	last       int
}

func newRowSpan(ev Events, start, end int) *rowSpan {
	return &rowSpan{ev: ev, start: start, end: end, last: start}
}

// rows reports progress when it advanced by more than progressStep or on the last row
func (s *rowSpan) rows(processed, total int) {
	if total <= 0 {
		return
	}
	pct := s.start + (s.end-s.start)*processed/total
	if pct > s.last+progressStep || processed == total {
		s.ev.Progress(pct, fmt.Sprintf("Processing: %d/%d rows", processed, total))
		s.last = pct
	}
}

// finish reports the end of the range
func (s *rowSpan) finish(label string) {
	s.ev.Progress(s.end, label)
	s.last = s.end
}
