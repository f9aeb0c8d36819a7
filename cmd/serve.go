// ABOUTME: Serve command starting the capacity planner HTTP API
// ABOUTME: Wires config, cache, metrics, and handlers, with graceful shutdown

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fronthaul-tools/capacity-planner/cache"
	"github.com/fronthaul-tools/capacity-planner/config"
	"github.com/fronthaul-tools/capacity-planner/handlers"
	"github.com/fronthaul-tools/capacity-planner/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the capacity planner HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	table, err := cfg.TierTable()
	if err != nil {
		return err
	}

	slog.Info("Starting capacity planner")
	if cfg.InsightsConfigured() {
		slog.Info("AI recommendations enabled")
	} else {
		slog.Info("AI recommendations not configured, using deterministic fallback")
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	metrics := observability.NewCollector(nil)
	h := handlers.NewHandler(cfg, c, table, metrics)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
