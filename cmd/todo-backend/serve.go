package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"todo-backend/internal/config"
	"todo-backend/internal/httpapi"
	"todo-backend/internal/ids"
	"todo-backend/internal/observability/logging"
	"todo-backend/internal/store/memorystore"
)

// serve runs the API until ctx is cancelled or SIGINT/SIGTERM arrives.
func serve(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	newID, err := ids.ForScheme(cfg.IDScheme)
	if err != nil {
		return err
	}

	store := memorystore.NewTodoStore(cfg.BaseURL, memorystore.WithIDFunc(newID))
	handler := httpapi.NewServer(store, httpapi.Options{
		Logger:         logger,
		PathPrefix:     cfg.PathPrefix(),
		Debug:          cfg.Debug,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr, "base_url", cfg.BaseURL, "id_scheme", cfg.IDScheme)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("bye", "todos_dropped", store.Len())
	return nil
}
