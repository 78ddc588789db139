package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/config"
	"github.com/labworks/labextract/internal/home"
	"github.com/labworks/labextract/internal/metrics"
	"github.com/labworks/labextract/internal/pipeline"
	"github.com/labworks/labextract/internal/repair"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/server/endpoints"
	"github.com/labworks/labextract/internal/svcctx"
	"github.com/labworks/labextract/internal/words"
)

// Server is the labextract HTTP server.
// It loads the analyte table on start and rebuilds the processor when the
// configuration file changes.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	home       *home.Dir
	logger     *slog.Logger

	// table and source override what the config would build; used in tests.
	table  *analytes.Table
	source words.Source

	// services holds all core services for context enrichment
	services *svcctx.Services

	// recorder outlives config reloads
	recorder *metrics.Recorder

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu       sync.RWMutex
	running  bool
	listener net.Listener
}

// Config holds server configuration.
type Config struct {
	// ConfigManager provides configuration with hot-reload support.
	// When nil, defaults are used and nothing is reloaded.
	ConfigManager *config.Manager
	// Home is the labextract home directory (default: ~/.labextract)
	Home *home.Dir
	// Table replaces the configured analyte table when set.
	Table *analytes.Table
	// Source replaces the PDF word source when set.
	Source words.Source
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		h, err := home.New("")
		if err != nil {
			return nil, err
		}
		cfg.Home = h
	}

	s := &Server{
		configMgr: cfg.ConfigManager,
		home:      cfg.Home,
		logger:    cfg.Logger,
		table:     cfg.Table,
		source:    cfg.Source,
		recorder:  metrics.NewRecorder(metrics.DefaultCapacity),
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{Routes: s.endpointRegistry.Routes}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         s.currentConfig().Addr(),
		Handler:      s.withRequestID(s.withServices(mux)),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// currentConfig returns the managed config, or defaults without a manager.
func (s *Server) currentConfig() *config.Config {
	if s.configMgr != nil {
		return s.configMgr.Get()
	}
	return config.DefaultConfig()
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start initializes services and serves HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.initialize(); err != nil {
		s.setNotRunning()
		return err
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// initialize prepares the home directory, builds the processor and
// subscribes to config changes.
func (s *Server) initialize() error {
	if err := s.home.EnsureExists(); err != nil {
		return err
	}

	services, err := s.buildServices(s.currentConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	s.setServices(services)
	s.logger.Info("analyte table loaded",
		"codes", services.Processor.Table().Len(),
		"rules", services.Processor.Rules())

	if s.configMgr != nil {
		s.configMgr.OnChange(s.reload)
	}
	return nil
}

// reload rebuilds services from a changed config. A config that fails to
// build leaves the previous services in place.
func (s *Server) reload(cfg *config.Config) {
	services, err := s.buildServices(cfg)
	if err != nil {
		s.logger.Error("config reload rejected", "error", err)
		return
	}
	s.setServices(services)
	s.logger.Info("processor reloaded from config", "codes", services.Processor.Table().Len())
}

// buildServices constructs the processor and sink described by cfg.
func (s *Server) buildServices(cfg *config.Config) (*svcctx.Services, error) {
	table := s.table
	if table == nil {
		var err error
		table, err = analytes.Load(cfg.AnalyteTablePath())
		if err != nil {
			return nil, err
		}
	}

	engine, err := repair.NewEngine(cfg.RepairOptions())
	if err != nil {
		return nil, err
	}

	proc, err := pipeline.New(pipeline.Config{
		Table:     table,
		Source:    s.source,
		Clusterer: cfg.Clusterer(),
		Engine:    engine,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}

	return &svcctx.Services{
		Processor: proc,
		Sink:      result.NewSink(s.home.ResultsPath()),
		Persist:   cfg.Output.Persist,
		Metrics:   s.recorder,
		ConfigMgr: s.configMgr,
		Logger:    s.logger,
		Home:      s.home,
	}, nil
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *Server) setServices(services *svcctx.Services) {
	s.mu.Lock()
	s.services = services
	s.mu.Unlock()
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the address the server is listening on, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Registry returns the endpoint registry.
func (s *Server) Registry() *api.Registry {
	return s.endpointRegistry
}
