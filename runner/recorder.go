package runner

import (
	"fmt"
	"time"

	"github.com/slashymail/shortcut-acceptor/catalog"
	"github.com/slashymail/shortcut-acceptor/types"
)

// Clock returns the current time. Tests substitute a fixed sequence.
type Clock func() time.Time

// Recorder accumulates shortcut outcomes for a single run in call order.
// A Recorder is not safe for concurrent use.
type Recorder struct {
	clock     Clock
	startTime time.Time
	last      time.Time
	outcomes  []types.TestOutcome
	counts    types.StatusCounts
}

// NewRecorder creates an empty recorder. A nil clock uses time.Now.
func NewRecorder(clock Clock) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	start := clock()
	return &Recorder{
		clock:     clock,
		startTime: start,
		last:      start,
		outcomes:  make([]types.TestOutcome, 0),
	}
}

// Record appends an outcome and counts it. Unknown statuses are rejected and
// nothing is recorded.
func (r *Recorder) Record(shortcut, description string, status types.TestStatus, notes string) error {
	return r.record(shortcut, description, status, notes, "")
}

// RecordCase records a catalog case, keeping its category
func (r *Recorder) RecordCase(tc catalog.Case) error {
	return r.record(tc.Shortcut, tc.Description, tc.Status, tc.Notes, tc.Category)
}

func (r *Recorder) record(shortcut, description string, status types.TestStatus, notes, category string) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("recording %s: %w", shortcut, err)
	}

	now := r.clock()
	if now.Before(r.last) {
		now = r.last
	}
	r.last = now

	r.outcomes = append(r.outcomes, types.TestOutcome{
		Shortcut:    shortcut,
		Description: description,
		Status:      status,
		Timestamp:   now,
		Notes:       notes,
		Category:    category,
	})
	r.counts.Add(status)
	return nil
}

// Last returns the most recently recorded outcome
func (r *Recorder) Last() (types.TestOutcome, bool) {
	if len(r.outcomes) == 0 {
		return types.TestOutcome{}, false
	}
	return r.outcomes[len(r.outcomes)-1], true
}

// Outcomes returns a copy of the recorded sequence
func (r *Recorder) Outcomes() []types.TestOutcome {
	out := make([]types.TestOutcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Counts returns the per-status counters
func (r *Recorder) Counts() types.StatusCounts {
	return r.counts
}

// Total returns the number of recorded outcomes
func (r *Recorder) Total() int {
	return len(r.outcomes)
}

// PassRate returns passed/total*100, or 0 when nothing has been recorded
func (r *Recorder) PassRate() float64 {
	return r.counts.PassRate()
}

// StartTime is the time the recorder was created
func (r *Recorder) StartTime() time.Time {
	return r.startTime
}

// Now reads the recorder clock
func (r *Recorder) Now() time.Time {
	return r.clock()
}
