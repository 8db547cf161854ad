package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/georally/georally-server/internal/auth"
	"github.com/georally/georally-server/internal/config"
	"github.com/georally/georally-server/internal/core"
	"github.com/georally/georally-server/internal/store"
	"github.com/georally/georally-server/internal/store/sqlite"
	transporthttp "github.com/georally/georally-server/internal/transport/http"
)

// App wires together the coordinator, auth, store, and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	coord           *core.Coordinator
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration. The room
// registry and presence tracker are created here and live for the whole
// process; nothing about rooms or presence survives a restart.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("database initialized")

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	}
	authService := auth.NewService(st, jwtConfig)

	coord := core.NewCoordinator(core.NewRegistry(), core.NewTracker(), logger)
	server := transporthttp.NewServer(coord, authService, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		coord:           coord,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the coordinator and HTTP server and blocks until context
// cancellation or a fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.coord.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
