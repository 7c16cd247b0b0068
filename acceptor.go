package acceptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/slashymail/shortcut-acceptor/catalog"
	"github.com/slashymail/shortcut-acceptor/reporting"
	"github.com/slashymail/shortcut-acceptor/runner"
)

// acceptor implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &acceptor{}

// acceptor records the shortcut catalog once and writes the report
type acceptor struct {
	config  *Config
	version string
	out     io.Writer
	clock   runner.Clock
	runID   func() string
	tracer  trace.Tracer
	result  *reporting.Report

	running atomic.Bool

	shutdownCallback func(error) // Callback to signal application shutdown
}

// Option customises an acceptor
type Option func(*acceptor)

// WithOutput sets where console output is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *acceptor) { a.out = w }
}

// WithClock sets the clock used for outcome and report timestamps
func WithClock(clock runner.Clock) Option {
	return func(a *acceptor) { a.clock = clock }
}

// WithRunID sets the run id generator. Defaults to random UUIDs.
func WithRunID(f func() string) Option {
	return func(a *acceptor) { a.runID = f }
}

func New(config *Config, version string, shutdownCallback func(error), opts ...Option) (*acceptor, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if shutdownCallback == nil {
		shutdownCallback = func(error) {}
	}

	config.Log.Debug("Creating acceptor with config",
		"reportPath", config.ReportPath,
		"catalog", config.CatalogPath,
		"summaryLog", config.SummaryLog)

	a := &acceptor{
		config:           config,
		version:          version,
		out:              os.Stdout,
		runID:            func() string { return uuid.New().String() },
		tracer:           otel.Tracer("shortcut acceptor"),
		shutdownCallback: shutdownCallback,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start implements the cliapp.Lifecycle interface.
func (a *acceptor) Start(ctx context.Context) error {
	a.running.Store(true)
	a.config.Log.Info("Starting shortcut-acceptor", "version", a.version)

	if _, err := a.Run(ctx); err != nil {
		a.config.Log.Error("Runtime error running shortcuts", "error", err)
		return err
	}

	a.config.Log.Info("Run completed, exiting")
	go func() {
		a.shutdownCallback(nil)
	}()
	return nil
}

// Stop implements the cliapp.Lifecycle interface.
func (a *acceptor) Stop(ctx context.Context) error {
	if !a.running.Load() {
		a.config.Log.Debug("Acceptor already stopped, nothing to do")
		return nil
	}
	a.running.Store(false)
	a.config.Log.Info("Acceptor stopped")
	return nil
}

// Stopped implements the cliapp.Lifecycle interface.
func (a *acceptor) Stopped() bool {
	return !a.running.Load()
}

// Result returns the report of the last completed run
func (a *acceptor) Result() *reporting.Report {
	return a.result
}

// Run records every catalog case, prints the console summary and persists the
// report. A low pass rate is not an error. Failures are RuntimeErrors.
func (a *acceptor) Run(ctx context.Context) (*reporting.Report, error) {
	ctx, span := a.tracer.Start(ctx, "shortcut run")
	defer span.End()

	cat, err := catalog.Load(catalog.Options{Log: a.config.Log, Path: a.config.CatalogPath})
	if err != nil {
		return nil, NewRuntimeError("load catalog", err)
	}

	application := a.config.Application
	if application == "" {
		application = cat.Application()
	}
	runID := a.runID()
	span.SetAttributes(
		attribute.String("run.id", runID),
		attribute.String("application", application),
		attribute.Int("cases", cat.Len()),
	)

	rec := runner.NewRecorder(a.clock)
	stdout := reporting.NewStreamWriter(a.out)
	var console strings.Builder
	emit := func(s string) error {
		console.WriteString(s)
		return stdout.Write(s)
	}
	if err := emit(reporting.RenderHeader(application, rec.StartTime(), cat.Len())); err != nil {
		return nil, NewRuntimeError("write console", err)
	}

	for _, tc := range cat.Cases() {
		if err := ctx.Err(); err != nil {
			return nil, NewRuntimeError("record shortcuts", err)
		}
		if err := rec.RecordCase(tc); err != nil {
			return nil, NewRuntimeError("record shortcuts", err)
		}
		outcome, _ := rec.Last()
		if err := emit(reporting.FormatOutcomeLine(outcome) + "\n"); err != nil {
			return nil, NewRuntimeError("write console", err)
		}
	}

	report := reporting.NewReportBuilder().WithClock(rec.Now).Build(rec, reporting.Metadata{
		Application: application,
		Platform:    a.config.Platform,
		Browser:     a.config.Browser,
		URL:         a.config.URL,
		RunID:       runID,
		StartTime:   rec.StartTime(),
	})

	summary, err := reporting.RenderAll(report,
		reporting.NewTextFormatter(),
		reporting.NewTableFormatter(application+" Results", !a.config.NoColor),
	)
	if err != nil {
		return nil, NewRuntimeError("render summary", err)
	}
	if err := emit(summary); err != nil {
		return nil, NewRuntimeError("write console", err)
	}

	if err := reporting.PersistReport(report, a.config.ReportPath); err != nil {
		return nil, NewRuntimeError("persist report", err)
	}
	if err := emit(fmt.Sprintf("\n📄 Report saved to: %s\n", a.config.ReportPath)); err != nil {
		return nil, NewRuntimeError("write console", err)
	}

	if a.config.SummaryLog != "" {
		if err := reporting.WriteSummaryLog(a.config.SummaryLog, console.String()); err != nil {
			return nil, NewRuntimeError("write summary log", err)
		}
	}

	a.result = report
	a.config.Log.Info("Shortcut run completed",
		"run_id", runID,
		"total", report.Summary.Total,
		"pass_rate", report.Summary.PassRate,
		"verdict", report.Summary.Verdict())
	return report, nil
}
