package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/database"
	"github.com/emiliopalmerini/llmtrace/internal/server"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// Run starts the traceability API and blocks until SIGINT/SIGTERM.
func Run(cfg *Config) error {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	db, err := database.New(cfg.TursoDatabaseURL, cfg.TursoAuthToken)
	if err != nil {
		return err
	}
	defer db.Close()

	store := tracelog.NewStore(db, cfg.QueryTimeout)

	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.NewHTTPHandler(store, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.QueryTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}
