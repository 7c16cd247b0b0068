// Package types contains shared types used across the shortcut acceptance tooling
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a status string is not one of the recognised values
var ErrUnknownStatus = errors.New("unknown test status")

// TestStatus represents the recorded outcome of a single shortcut check
type TestStatus string

const (
	TestStatusPass     TestStatus = "PASS"
	TestStatusFail     TestStatus = "FAIL"
	TestStatusPartial  TestStatus = "PARTIAL"
	TestStatusError    TestStatus = "ERROR"
	TestStatusUntested TestStatus = "UNTESTED"
)

// AllStatuses lists every recognised status in display order
var AllStatuses = []TestStatus{
	TestStatusPass,
	TestStatusFail,
	TestStatusPartial,
	TestStatusError,
	TestStatusUntested,
}

// String implements the Stringer interface for TestStatus
func (s TestStatus) String() string {
	return string(s)
}

// Validate returns ErrUnknownStatus if s is not a recognised status
func (s TestStatus) Validate() error {
	switch s {
	case TestStatusPass, TestStatusFail, TestStatusPartial, TestStatusError, TestStatusUntested:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
}

// Icon returns the single-character marker used in console and HTML output
func (s TestStatus) Icon() string {
	switch s {
	case TestStatusPass:
		return "✓"
	case TestStatusFail:
		return "✗"
	case TestStatusPartial:
		return "⚠"
	default:
		return "-"
	}
}

// ParseStatus converts a string into a TestStatus. Matching ignores case and
// surrounding whitespace; anything else is rejected.
func ParseStatus(s string) (TestStatus, error) {
	status := TestStatus(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// UnmarshalJSON rejects unknown statuses when decoding a report
func (s *TestStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML rejects unknown statuses when decoding a catalog
func (s *TestStatus) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
