package types

import "time"

// TestOutcome is one recorded shortcut check. Outcomes are never modified once recorded.
type TestOutcome struct {
	Shortcut    string     `json:"shortcut"`
	Description string     `json:"description"`
	Status      TestStatus `json:"status"`
	Timestamp   time.Time  `json:"timestamp"`
	Notes       string     `json:"notes"`
	Category    string     `json:"category,omitempty"`
}

// StatusCounts holds the number of outcomes recorded per status
type StatusCounts struct {
	Passed   int
	Failed   int
	Partial  int
	Errored  int
	Untested int
}

// Total returns the sum of all buckets
func (c StatusCounts) Total() int {
	return c.Passed + c.Failed + c.Partial + c.Errored + c.Untested
}

// Add increments the bucket for status. Unknown statuses are ignored; callers
// validate before counting.
func (c *StatusCounts) Add(status TestStatus) {
	switch status {
	case TestStatusPass:
		c.Passed++
	case TestStatusFail:
		c.Failed++
	case TestStatusPartial:
		c.Partial++
	case TestStatusError:
		c.Errored++
	case TestStatusUntested:
		c.Untested++
	}
}

// Get returns the count for a single status
func (c StatusCounts) Get(status TestStatus) int {
	switch status {
	case TestStatusPass:
		return c.Passed
	case TestStatusFail:
		return c.Failed
	case TestStatusPartial:
		return c.Partial
	case TestStatusError:
		return c.Errored
	case TestStatusUntested:
		return c.Untested
	default:
		return 0
	}
}

// PassRate returns passed/total as a percentage, or 0 when nothing was counted
func (c StatusCounts) PassRate() float64 {
	total := c.Total()
	if total == 0 {
		return 0.0
	}
	return float64(c.Passed) / float64(total) * 100
}
