package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/schedule-builder/internal/config"
	"github.com/preston-bernstein/schedule-builder/internal/exports"
	httpserver "github.com/preston-bernstein/schedule-builder/internal/http"
	"github.com/preston-bernstein/schedule-builder/internal/http/handlers"
	"github.com/preston-bernstein/schedule-builder/internal/http/middleware"
	"github.com/preston-bernstein/schedule-builder/internal/logging"
	"github.com/preston-bernstein/schedule-builder/internal/metrics"
	"github.com/preston-bernstein/schedule-builder/internal/orchestrator"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	orch          *orchestrator.Orchestrator
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server talking to the configured scheduling service.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithRemote(cfg, logger, nil, nil)
}

func newServerWithRemote(cfg config.Config, logger *slog.Logger, api remote.API, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if api == nil {
		api = BuildRemote(cfg)
	}
	orch := BuildOrchestrator(cfg, remote.NewInstrumented(api, recorder, logger), recorder, logger)
	httpSrv := buildHTTPServer(cfg, orch, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		orch:          orch,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, orch *orchestrator.Orchestrator, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		orch:       orch,
		httpServer: httpSrv,
	}
}

// BuildRemote constructs the scheduling service client from configuration.
func BuildRemote(cfg config.Config) *remote.Client {
	return remote.NewClient(remote.Config{
		BaseURL: cfg.Service.BaseURL,
		APIKey:  cfg.Service.APIKey,
		Timeout: cfg.Service.Timeout,
	})
}

// BuildOrchestrator wires the orchestrator with the local export writer when an export
// directory is configured.
func BuildOrchestrator(cfg config.Config, api orchestrator.Remote, recorder *metrics.Recorder, logger *slog.Logger) *orchestrator.Orchestrator {
	opts := orchestrator.Options{
		Season:  cfg.Defaults.Season,
		Metrics: recorder,
		Logger:  logger,
	}
	if cfg.ExportDir != "" {
		opts.Saver = exports.NewWriter(cfg.ExportDir, 0)
	}
	return orchestrator.New(api, opts)
}

func buildHTTPServer(cfg config.Config, orch *orchestrator.Orchestrator, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(orch, cfg.ExportDir, logger)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(orch, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, wrapped, writeTimeoutFor(cfg.Service.Timeout))
}

// Run starts the HTTP server and loads the default selection, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	go s.bootstrap(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// bootstrap selects the configured default sport so the service becomes ready without a client.
func (s *Server) bootstrap(ctx context.Context) {
	sport := s.cfg.Defaults.Sport
	if sport == "" || s.orch == nil {
		return
	}
	if err := s.orch.SelectSport(ctx, sport, s.cfg.Defaults.Conference); err != nil {
		logging.Warn(s.logger, "default sport load failed",
			slog.String(logging.FieldSport, sport),
			"error", err,
		)
		return
	}
	logging.Info(s.logger, "default sport loaded", slog.String(logging.FieldSport, sport))
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler, 0)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Orchestrator exposes the orchestrator backing the server.
func (s *Server) Orchestrator() *orchestrator.Orchestrator {
	return s.orch
}
