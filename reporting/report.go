package reporting

import (
	"math"
	"time"

	"github.com/slashymail/shortcut-acceptor/runner"
	"github.com/slashymail/shortcut-acceptor/types"
)

// Verdict is the qualitative status derived from the pass rate
type Verdict string

const (
	VerdictProductionReady  Verdict = "PRODUCTION READY"
	VerdictMostlyFunctional Verdict = "MOSTLY FUNCTIONAL"
	VerdictNeedsImprovement Verdict = "NEEDS IMPROVEMENT"
)

const (
	productionReadyThreshold  = 80.0
	mostlyFunctionalThreshold = 60.0
)

// VerdictFor thresholds a pass rate percentage
func VerdictFor(passRate float64) Verdict {
	switch {
	case passRate >= productionReadyThreshold:
		return VerdictProductionReady
	case passRate >= mostlyFunctionalThreshold:
		return VerdictMostlyFunctional
	default:
		return VerdictNeedsImprovement
	}
}

// Icon returns the marker printed in front of the verdict
func (v Verdict) Icon() string {
	switch v {
	case VerdictProductionReady:
		return "✓"
	case VerdictMostlyFunctional:
		return "⚠"
	default:
		return "✗"
	}
}

// String renders the verdict with its marker, e.g. "✓ PRODUCTION READY"
func (v Verdict) String() string {
	return v.Icon() + " " + string(v)
}

// Metadata describes the target of a run
type Metadata struct {
	Application string    `json:"application"`
	Platform    string    `json:"platform"`
	Browser     string    `json:"browser"`
	URL         string    `json:"url"`
	RunID       string    `json:"run_id,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// Summary contains aggregated statistics for a run
type Summary struct {
	Total    int     `json:"total_tests"`
	Passed   int     `json:"passed"`
	Partial  int     `json:"partial"`
	Failed   int     `json:"failed"`
	Errored  int     `json:"errors"`
	Untested int     `json:"untested"`
	PassRate float64 `json:"pass_rate"`
}

// NewSummary derives a summary from status counters. The pass rate is rounded
// to two decimal places.
func NewSummary(counts types.StatusCounts) Summary {
	return Summary{
		Total:    counts.Total(),
		Passed:   counts.Passed,
		Partial:  counts.Partial,
		Failed:   counts.Failed,
		Errored:  counts.Errored,
		Untested: counts.Untested,
		PassRate: roundTo2(counts.PassRate()),
	}
}

// Verdict returns the qualitative status for this summary. Thresholds apply to
// the unrounded rate derived from the counts.
func (s Summary) Verdict() Verdict {
	if s.Total == 0 {
		return VerdictFor(0)
	}
	return VerdictFor(float64(s.Passed) / float64(s.Total) * 100)
}

// Report is the persisted and served artifact for one run
type Report struct {
	Metadata Metadata            `json:"metadata"`
	Summary  Summary             `json:"summary"`
	Results  []types.TestOutcome `json:"test_results"`
}

// Duration is the wall time between start and end of the run
func (r *Report) Duration() time.Duration {
	return r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// CategoryStats is the per-category rollup shown in the console summary.
// Attempted counts PASS, FAIL and PARTIAL outcomes only.
type CategoryStats struct {
	Name      string
	Passed    int
	Attempted int
}

// PassRate returns passed/attempted as a percentage
func (c CategoryStats) PassRate() float64 {
	if c.Attempted == 0 {
		return 0.0
	}
	return float64(c.Passed) / float64(c.Attempted) * 100
}

// AllPassed reports whether every attempted outcome passed
func (c CategoryStats) AllPassed() bool {
	return c.Attempted > 0 && c.Passed == c.Attempted
}

// Categories rolls results up by category in order of first appearance.
// Outcomes without a category are skipped.
func (r *Report) Categories() []CategoryStats {
	index := make(map[string]int)
	stats := make([]CategoryStats, 0)

	for _, outcome := range r.Results {
		if outcome.Category == "" {
			continue
		}
		i, ok := index[outcome.Category]
		if !ok {
			i = len(stats)
			index[outcome.Category] = i
			stats = append(stats, CategoryStats{Name: outcome.Category})
		}
		switch outcome.Status {
		case types.TestStatusPass:
			stats[i].Passed++
			stats[i].Attempted++
		case types.TestStatusFail, types.TestStatusPartial:
			stats[i].Attempted++
		}
	}
	return stats
}

// ReportBuilder constructs a Report from a Recorder
type ReportBuilder struct {
	clock runner.Clock
}

// NewReportBuilder creates a new report builder using the wall clock
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{clock: time.Now}
}

// WithClock sets the clock used to stamp the end time
func (rb *ReportBuilder) WithClock(clock runner.Clock) *ReportBuilder {
	if clock != nil {
		rb.clock = clock
	}
	return rb
}

// Build creates a report from everything recorded so far. The result list is
// copied, so later recording does not change a built report. A zero start time
// in meta is taken from the recorder.
func (rb *ReportBuilder) Build(rec *runner.Recorder, meta Metadata) *Report {
	if meta.StartTime.IsZero() {
		meta.StartTime = rec.StartTime()
	}
	meta.EndTime = rb.clock()

	return &Report{
		Metadata: meta,
		Summary:  NewSummary(rec.Counts()),
		Results:  rec.Outcomes(),
	}
}

// BuildReport builds a report stamped with the current time
func BuildReport(rec *runner.Recorder, meta Metadata) *Report {
	return NewReportBuilder().Build(rec, meta)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
