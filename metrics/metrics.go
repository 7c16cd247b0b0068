package metrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/slashymail/shortcut-acceptor/types"
)

const (
	MetricsNamespace = "shortcut_acceptor"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "outcomes_total",
		Help:      "Count of recorded shortcut outcomes",
	}, []string{
		"application",
		"status",
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "runs_total",
		Help:      "Count of completed runs by verdict",
	}, []string{
		"application",
		"verdict",
	})

	passRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "pass_rate",
		Help:      "Pass rate percentage of the latest run",
	}, []string{
		"application",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of the latest run",
	}, []string{
		"application",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests served",
	}, []string{
		"route",
		"code",
	})

	triggerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "trigger_duration_seconds",
		Help:      "Duration of driver invocations made by the report service",
		Buckets:   prometheus.DefBuckets,
	}, []string{
		"result",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordOutcome(application string, status types.TestStatus) {
	if err := status.Validate(); err != nil {
		log.Error("RecordOutcome - invalid status", "status", status)
		return
	}
	outcomesTotal.WithLabelValues(application, string(status)).Inc()
}

func RecordRun(application string, verdict string, rate float64, duration time.Duration) {
	if Debug {
		log.Debug("metric set",
			"m", "runs_total",
			"application", application,
			"verdict", verdict,
			"pass_rate", rate)
	}
	runsTotal.WithLabelValues(application, verdict).Inc()
	passRate.WithLabelValues(application).Set(rate)
	runDuration.WithLabelValues(application).Set(duration.Seconds())
}

func RecordHTTPRequest(route string, code int) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func RecordTrigger(err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	triggerDuration.WithLabelValues(result).Observe(duration.Seconds())
}
