package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/campusauth/internal/bootstrap"
	"github.com/yigit/campusauth/internal/config"
	"github.com/yigit/campusauth/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context, configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, closers, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup account store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, store, lgr)
	if err != nil {
		for _, closeFn := range closers {
			closeFn()
		}
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}
	deps.AddCloser(closers...)

	if err := bootstrap.SeedDefaultAdmin(ctx, cfg, deps); err != nil {
		// A failed seed leaves the service usable for everything else
		lgr.Error().Err(err).Msg("Failed to create default administrator, proceeding anyway...")
	}

	return New(cfg, bootstrap.SetupRouter(cfg, deps), deps, lgr), nil
}

// New assembles a server from already built parts
func New(cfg *config.Config, router *gin.Engine, deps *bootstrap.Dependencies, lgr zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		router: router,
		deps:   deps,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  helpers.ParseDuration(cfg.Server.ReadTimeout, 15*time.Second),
			WriteTimeout: helpers.ParseDuration(cfg.Server.WriteTimeout, 15*time.Second),
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("HTTP server listening")
		serverErrors <- s.http.Serve(listener)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeDependencies()
			return fmt.Errorf("error serving http: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested, stopping server...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 30*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var shutdownErr error
	s.logger.Info().Msg("Shutting down HTTP server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		shutdownErr = fmt.Errorf("server shutdown completed with errors: %w", err)
	} else {
		s.logger.Info().Msg("HTTP server gracefully stopped.")
	}

	s.closeDependencies()
	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

func (s *Server) closeDependencies() {
	if s.deps != nil {
		s.deps.Close()
	}
}
