package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/slashymail/shortcut-acceptor/metrics"
	"github.com/slashymail/shortcut-acceptor/reporting"
)

const (
	RunTestsPath = "/run-tests"
	HealthzPath  = "/healthz"
	MetricsPath  = "/metrics"
)

// ReportReader returns the bytes of the current report file
type ReportReader func(path string) ([]byte, error)

// ReportServer serves the index page and relays freshly generated reports
type ReportServer struct {
	log         log.Logger
	trigger     Trigger
	reportPath  string
	application string
	readReport  ReportReader

	// runMu serialises trigger-then-read so a response always carries the
	// report produced by its own run
	runMu sync.Mutex
}

// ServerConfig configures a ReportServer
type ServerConfig struct {
	Log         log.Logger
	Trigger     Trigger
	ReportPath  string
	Application string
	// ReadReport defaults to reporting.ReadReportBytes
	ReadReport ReportReader
}

// NewReportServer creates a report server
func NewReportServer(cfg ServerConfig) *ReportServer {
	logger := cfg.Log
	if logger == nil {
		logger = log.New()
	}
	reader := cfg.ReadReport
	if reader == nil {
		reader = reporting.ReadReportBytes
	}
	return &ReportServer{
		log:         logger,
		trigger:     cfg.Trigger,
		reportPath:  cfg.ReportPath,
		application: cfg.Application,
		readReport:  reader,
	}
}

// Handler builds the routed, CORS-wrapped HTTP handler
func (s *ReportServer) Handler() (http.Handler, error) {
	tmpl, err := getHTMLTemplate(indexTemplate)
	if err != nil {
		return nil, err
	}
	var index bytes.Buffer
	if err := tmpl.Execute(&index, IndexData{Application: s.application, RunPath: RunTestsPath}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	page := index.Bytes()

	r := mux.NewRouter()
	r.Use(recordRequests)
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page) //nolint:errcheck
	}).Methods(http.MethodGet)
	r.HandleFunc(RunTestsPath, s.handleRunTests).Methods(http.MethodGet)
	r.HandleFunc(HealthzPath, s.handleHealthz).Methods(http.MethodGet)
	r.Handle(MetricsPath, promhttp.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	return c.Handler(r), nil
}

func (s *ReportServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.log.Debug("Received health check request", "path", r.URL.Path)
	w.Write([]byte("OK")) //nolint:errcheck
}

func (s *ReportServer) handleRunTests(w http.ResponseWriter, r *http.Request) {
	data, err := s.runAndRead(r.Context())
	if err != nil {
		s.log.Error("Run tests request failed", "err", err)
		metrics.RecordErrorDetails("run_tests", err)
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// runAndRead triggers one driver run and returns the report bytes it wrote
func (s *ReportServer) runAndRead(ctx context.Context) ([]byte, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	tracer := otel.Tracer("report-service")
	ctx, span := tracer.Start(ctx, "run tests")
	defer span.End()

	start := time.Now()
	err := s.trigger.Run(ctx)
	metrics.RecordTrigger(err, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	data, err := s.readReport(s.reportPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.bytes", len(data)))

	// The driver runs out of process, so run metrics are taken from the report it wrote
	if report, err := reporting.Unmarshal(data); err != nil {
		s.log.Warn("Could not decode report, run metrics not recorded", "path", s.reportPath, "err", err)
		metrics.RecordErrorDetails("decode_report", err)
	} else {
		recordReport(report)
		span.SetAttributes(
			attribute.String("run.id", report.Metadata.RunID),
			attribute.Float64("pass_rate", report.Summary.PassRate),
		)
	}
	s.log.Info("Relayed report", "path", s.reportPath, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

func recordReport(report *reporting.Report) {
	application := report.Metadata.Application
	for _, outcome := range report.Results {
		metrics.RecordOutcome(application, outcome.Status)
	}
	metrics.RecordRun(application, string(report.Summary.Verdict()), report.Summary.PassRate, report.Duration())
}

func writeJSONError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}) //nolint:errcheck
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

// recordRequests counts requests by route template and status code
func recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sr, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.RecordHTTPRequest(route, sr.code)
	})
}
