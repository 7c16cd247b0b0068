package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum/go-ethereum/log"

	"github.com/slashymail/shortcut-acceptor/metrics"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = "5000"

	readHeaderTimeout = 10 * time.Second
)

// Service implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &Service{}

// Service runs the report server until stopped
type Service struct {
	log     log.Logger
	addr    string
	reports *ReportServer

	server   *http.Server
	listener net.Listener
	running  atomic.Bool
	done     chan struct{}
}

// New creates a service listening on addr
func New(logger log.Logger, addr string, reports *ReportServer) *Service {
	return &Service{
		log:     logger,
		addr:    addr,
		reports: reports,
	}
}

// Start implements the cliapp.Lifecycle interface.
func (s *Service) Start(ctx context.Context) error {
	s.log.Info("service starting")

	handler, err := s.reports.Handler()
	if err != nil {
		return fmt.Errorf("building handler: %w", err)
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.done = make(chan struct{})
	s.running.Store(true)

	go func() {
		defer close(s.done)
		s.log.Info("starting report server", "addr", listener.Addr().String())
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error serving reports", "err", err)
			metrics.RecordErrorDetails("error serving reports", err)
		}
	}()

	s.log.Info("service started")
	return nil
}

// Addr returns the bound listen address, useful when started on port 0
func (s *Service) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop implements the cliapp.Lifecycle interface.
func (s *Service) Stop(ctx context.Context) error {
	s.log.Info("service shutting down")
	if !s.running.Load() {
		s.log.Debug("Service already stopped, nothing to do")
		return nil
	}
	s.running.Store(false)

	err := s.server.Shutdown(ctx)
	<-s.done
	s.log.Info("service stopped")
	return err
}

// Stopped implements the cliapp.Lifecycle interface.
func (s *Service) Stopped() bool {
	return !s.running.Load()
}
