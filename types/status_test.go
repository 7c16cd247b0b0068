package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TestStatus
		wantErr bool
	}{
		{name: "pass", input: "PASS", want: TestStatusPass},
		{name: "lowercase fail", input: "fail", want: TestStatusFail},
		{name: "padded partial", input: "  Partial ", want: TestStatusPartial},
		{name: "error", input: "ERROR", want: TestStatusError},
		{name: "untested", input: "UNTESTED", want: TestStatusUntested},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "SKIPPED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTestStatus_Validate(t *testing.T) {
	for _, status := range AllStatuses {
		assert.NoError(t, status.Validate(), "status %s", status)
	}
	assert.ErrorIs(t, TestStatus("pass").Validate(), ErrUnknownStatus)
	assert.ErrorIs(t, TestStatus("BOGUS").Validate(), ErrUnknownStatus)
}

func TestTestStatus_Icon(t *testing.T) {
	assert.Equal(t, "✓", TestStatusPass.Icon())
	assert.Equal(t, "✗", TestStatusFail.Icon())
	assert.Equal(t, "⚠", TestStatusPartial.Icon())
	assert.Equal(t, "-", TestStatusError.Icon())
	assert.Equal(t, "-", TestStatusUntested.Icon())
}

func TestTestStatus_UnmarshalJSON(t *testing.T) {
	var out TestOutcome
	require.NoError(t, json.Unmarshal([]byte(`{"shortcut":"c","status":"partial"}`), &out))
	assert.Equal(t, TestStatusPartial, out.Status)

	err := json.Unmarshal([]byte(`{"shortcut":"c","status":"MAYBE"}`), &out)
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTestStatus_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Status TestStatus `yaml:"status"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("status: untested\n"), &doc))
	assert.Equal(t, TestStatusUntested, doc.Status)

	err := yaml.Unmarshal([]byte("status: flaky\n"), &doc)
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatusCounts(t *testing.T) {
	var c StatusCounts
	assert.Equal(t, 0.0, c.PassRate())

	for _, s := range []TestStatus{TestStatusPass, TestStatusPass, TestStatusFail, TestStatusPartial, TestStatusUntested} {
		c.Add(s)
	}
	c.Add(TestStatus("BOGUS"))

	assert.Equal(t, 5, c.Total())
	assert.Equal(t, 2, c.Get(TestStatusPass))
	assert.Equal(t, 1, c.Get(TestStatusUntested))
	assert.Equal(t, 0, c.Get(TestStatusError))
	assert.InDelta(t, 40.0, c.PassRate(), 1e-9)
}
