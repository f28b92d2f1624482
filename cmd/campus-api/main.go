// main is the entry point of the campus API server.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env and env overrides)
//  2. Initialise the logger
//  3. Open storage and apply migrations
//  4. Build the handler tree: routes, role gates, middleware
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/campus-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/campus-api
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/catalog"
	"github.com/ucsb-cs156/campus-api/internal/config"
	"github.com/ucsb-cs156/campus-api/internal/http/handlers/system"
	"github.com/ucsb-cs156/campus-api/internal/http/router"
	"github.com/ucsb-cs156/campus-api/internal/storage/postgres"
	"github.com/ucsb-cs156/campus-api/internal/storage/sqlite"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Installed as the default so packages can call slog.Info directly.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting campus-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.String("storage", cfg.Storage.Driver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	ctx := context.Background()
	stores, closer, err := openStores(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closer.Close()

	log.Info("storage initialised", slog.String("driver", cfg.Storage.Driver))

	// ── 4. Build the Handler Tree ─────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := router.New(router.Deps{
		Stores:   stores,
		Verifier: auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AdminEmails),
		Info: system.Info{
			Env:           cfg.Env,
			Version:       version,
			StorageDriver: cfg.Storage.Driver,
		},
		Registry: registry,
	})

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStores connects the configured backend and returns a store per kind.
// The closer releases the connection pool; it is a no-op for "memory".
func openStores(ctx context.Context, cfg config.Storage) (catalog.Stores, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg)
		if err != nil {
			return catalog.Stores{}, nil, err
		}
		return catalog.SQLStores(db), db, nil

	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return catalog.Stores{}, nil, err
		}
		return catalog.SQLStores(db), db, nil

	case config.DriverMemory:
		return catalog.MemoryStores(), nopCloser{}, nil

	default:
		return catalog.Stores{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
