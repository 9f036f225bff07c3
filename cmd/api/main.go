package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/device-registry/internal/config"
	"github.com/device-registry/internal/infrastructure/dynamo"
	"github.com/device-registry/internal/infrastructure/memory"
	"github.com/device-registry/internal/logger"
	transporthttp "github.com/device-registry/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	l, err := logger.New(cfg.Log, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	if envErr != nil {
		l.Debug("No .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := newDeviceRepo(ctx, cfg, l)
	if err != nil {
		l.Fatal("Failed to initialise device store", "backend", cfg.StoreBackend, "error", err.Error())
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{DeviceRepo: repo, Logger: l})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		l.Info("Server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Server error", "error", err.Error())
		}
	}()

	<-ctx.Done()

	l.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Fatal("Forced shutdown", "error", err.Error())
	}
	l.Info("Server stopped")
}

func newDeviceRepo(ctx context.Context, cfg *config.Config, l *logger.Logger) (transporthttp.DeviceRepository, error) {
	if cfg.StoreBackend == config.StoreMemory {
		l.Warn("Using in-memory device store; records are lost on restart")
		return memory.NewDeviceRepo(), nil
	}

	client, err := dynamo.NewClient(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	if cfg.Dynamo.Bootstrap {
		// Creates the table if it doesn't exist.
		if err := dynamo.Bootstrap(ctx, client, cfg.Dynamo.DevicesTable, l); err != nil {
			return nil, err
		}
	}
	return dynamo.NewDeviceRepo(client, cfg.Dynamo.DevicesTable), nil
}
