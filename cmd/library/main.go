// cmd/library/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spoorthi225f2/Library/internal/accounts"
	"github.com/spoorthi225f2/Library/internal/catalog"
	"github.com/spoorthi225f2/Library/internal/lending"
	"github.com/spoorthi225f2/Library/internal/platform/config"
	"github.com/spoorthi225f2/Library/internal/platform/db"
	"github.com/spoorthi225f2/Library/internal/platform/tracing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, "library")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		return err
	}

	accountsSvc := accounts.NewService(database)
	catalogSvc := catalog.NewService(database)
	lendingSvc := lending.NewService(database)

	if err := seed(ctx, database, accountsSvc, catalogSvc, cfg.AdminPassword, logger); err != nil {
		return err
	}

	router := newRouter(routerDeps{
		accounts: accounts.NewHandler(accountsSvc, []byte(cfg.JWTSecret), logger),
		catalog:  catalog.NewHandler(catalogSvc, logger),
		lending:  lending.NewHandler(lendingSvc, catalogSvc, logger),
		secret:   []byte(cfg.JWTSecret),
		logger:   logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("library service listening", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
