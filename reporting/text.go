package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/slashymail/shortcut-acceptor/types"
)

const rule = "================================================================================"

// FormatOutcomeLine renders the progress line printed as each case is recorded
func FormatOutcomeLine(outcome types.TestOutcome) string {
	return fmt.Sprintf("%s %-14s → %-28s [%s]", outcome.Status.Icon(), outcome.Shortcut, outcome.Description, outcome.Status)
}

// RenderHeader renders the banner printed before any case is recorded
func RenderHeader(application string, start time.Time, total int) string {
	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "🧪 %s KEYBOARD SHORTCUT TEST SUITE\n", strings.ToUpper(application))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Start Time: %s\n", start.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Tests: %d\n", total)
	b.WriteString(rule + "\n")
	return b.String()
}

// RenderTextSummary renders the human-readable summary of a report. Output
// depends only on the report, so equal reports render identically.
func RenderTextSummary(report *Report) string {
	s := report.Summary

	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString("📊 TEST RESULTS SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Tests:     %d\n", s.Total)
	fmt.Fprintf(&b, "Passed:          %d (%.1f%%)\n", s.Passed, s.PassRate)
	fmt.Fprintf(&b, "Failed:          %d\n", s.Failed)
	fmt.Fprintf(&b, "Partial:         %d\n", s.Partial)
	fmt.Fprintf(&b, "Errors:          %d\n", s.Errored)
	fmt.Fprintf(&b, "Untested:        %d\n", s.Untested)
	fmt.Fprintf(&b, "Duration:        %.2fs\n", report.Duration().Seconds())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall Status:  %s\n", s.Verdict())
	b.WriteString(rule + "\n")
	return b.String()
}

// RenderCategories renders the per-category rollup. Categories with nothing
// attempted are left out.
func RenderCategories(report *Report) string {
	var b strings.Builder
	b.WriteString("\n📋 CATEGORY BREAKDOWN\n")
	b.WriteString(strings.Repeat("-", len(rule)) + "\n")
	for _, cat := range report.Categories() {
		if cat.Attempted == 0 {
			continue
		}
		marker := "✗"
		if cat.AllPassed() {
			marker = "✓"
		}
		fmt.Fprintf(&b, "%s %-30s %d/%d (%.0f%%)\n", marker, cat.Name, cat.Passed, cat.Attempted, cat.PassRate())
	}
	return b.String()
}

// TextFormatter renders the plain summary followed by the category rollup and
// a blank separator line
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements ReportFormatter
func (tf *TextFormatter) Format(report *Report) (string, error) {
	return RenderTextSummary(report) + RenderCategories(report) + "\n", nil
}
