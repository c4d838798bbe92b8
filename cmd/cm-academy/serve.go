package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cm-academy/cm-academy-api/internal/api"
	"github.com/cm-academy/cm-academy-api/internal/config"
	"github.com/cm-academy/cm-academy-api/internal/repository"
	"github.com/cm-academy/cm-academy-api/internal/resource"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := loadConfig()

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "store", cfg.Store.Driver)

	store := openStore(ctx, cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("store close error", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(store, resource.NewCollections(store))
	router := api.NewRouter(cfg, handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openStore never fails: a store that cannot be built is replaced by one
// that reports the error on every call, so the process keeps serving.
func openStore(ctx context.Context, cfg *config.Config) repository.DocumentStore {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	store, err := repository.Open(connectCtx, cfg.Store)
	if err != nil {
		slog.Error("failed to initialize store", "driver", cfg.Store.Driver, "error", err)
		return repository.Unavailable(err)
	}

	if err := store.Ping(connectCtx); err != nil {
		slog.Error("store ping failed, serving anyway", "driver", cfg.Store.Driver, "error", err)
		return store
	}

	slog.Info("connected to store", "driver", cfg.Store.Driver, "database", cfg.Store.Database)
	return store
}
