package metrics

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashymail/shortcut-acceptor/types"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: "nil"},
		{name: "simple error", err: errors.New("test error"), want: "test_error"},
		{name: "error with special chars", err: errors.New("test@error#123"), want: "testerror"},
		{name: "error with multiple underscores", err: errors.New("test__error"), want: "testerror"},
	}

	validLabelRegex := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errToLabel(tt.err)
			assert.Equal(t, tt.want, result)
			assert.Regexp(t, validLabelRegex, result)
		})
	}
}

func TestRecordErrorDetails(t *testing.T) {
	before := counterValue(t, errorsTotal.WithLabelValues("persist.disk_full"))

	RecordErrorDetails("persist", nil)
	RecordErrorDetails("persist", errors.New("disk full"))

	assert.Equal(t, before+1, counterValue(t, errorsTotal.WithLabelValues("persist.disk_full")))
}

func TestRecordOutcome(t *testing.T) {
	before := counterValue(t, outcomesTotal.WithLabelValues("metrics-test", "PASS"))

	RecordOutcome("metrics-test", types.TestStatusPass)
	RecordOutcome("metrics-test", types.TestStatusPass)
	RecordOutcome("metrics-test", types.TestStatus("BOGUS"))

	assert.Equal(t, before+2, counterValue(t, outcomesTotal.WithLabelValues("metrics-test", "PASS")))
}

func TestRecordRun(t *testing.T) {
	RecordRun("metrics-run", "PRODUCTION READY", 80.95, 3*time.Second)

	assert.Equal(t, 1.0, counterValue(t, runsTotal.WithLabelValues("metrics-run", "PRODUCTION READY")))
	assert.Equal(t, 80.95, gaugeValue(t, passRate.WithLabelValues("metrics-run")))
	assert.Equal(t, 3.0, gaugeValue(t, runDuration.WithLabelValues("metrics-run")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := counterValue(t, httpRequestsTotal.WithLabelValues("/run-tests", "500"))
	RecordHTTPRequest("/run-tests", 500)
	assert.Equal(t, before+1, counterValue(t, httpRequestsTotal.WithLabelValues("/run-tests", "500")))
}

func TestRecordTrigger(t *testing.T) {
	// just test that it doesn't panic
	require.NotPanics(t, func() {
		RecordTrigger(nil, time.Second)
		RecordTrigger(errors.New("exit status 1"), time.Second)
	})
}
