// Package server wires configuration, telemetry, the win-probability client
// and the HTTP surface into one runnable process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/ecf-team-win/internal/config"
	httpserver "github.com/preston-bernstein/ecf-team-win/internal/http"
	"github.com/preston-bernstein/ecf-team-win/internal/http/handlers"
	"github.com/preston-bernstein/ecf-team-win/internal/http/middleware"
	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/metrics"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
	"github.com/preston-bernstein/ecf-team-win/internal/teamwin"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	controller    *submit.Controller
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server that calls the configured win-probability service.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithCalculator(cfg, logger, nil, nil)
}

// newServerWithCalculator lets tests swap the remote service and recorder.
func newServerWithCalculator(cfg config.Config, logger *slog.Logger, calc submit.Calculator, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if calc == nil {
		calc = teamwin.NewClient(teamwin.Config{
			URL:      cfg.TeamWin.URL,
			APIKey:   cfg.TeamWin.APIKey,
			Timeout:  cfg.TeamWin.Timeout,
			Logger:   logger,
			Recorder: recorder,
		})
	}
	ctrl := submit.NewController(calc, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		controller:    ctrl,
		httpServer:    buildHTTPServer(cfg, ctrl, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv, metricsSrv httpServer, metricsStop func(context.Context) error) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
	}
}

func buildHTTPServer(cfg config.Config, ctrl *submit.Controller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(ctrl, logger,
		handlers.WithRecorder(recorder),
		handlers.WithSubmitTimeout(submitTimeout),
	)
	router := httpserver.NewRouter(handler, middleware.Logging(logger, recorder))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run serves HTTP (and metrics when enabled) until ctx is cancelled or a
// listener fails, then shuts everything down. A listener failure is returned.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return serve("http", s.httpServer, s.logger) })
	if s.metricsServer != nil {
		g.Go(func() error { return serve("metrics", s.metricsServer, s.logger) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func serve(name string, srv httpServer, logger *slog.Logger) error {
	logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(logger, name+" server failed", err)
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
