package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type gameStats interface {
	ActiveGames() int
}

// NewRouter - health and stats endpoints.
func NewRouter(stats gameStats) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.Handle("GET /stats", NewStatsHandler(stats))

	return mux
}

// Start - serves the router on port until ctx is done.
func Start(ctx context.Context, port string, stats gameStats) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(stats),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
