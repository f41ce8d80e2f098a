// Command server runs the local capture mock: it accepts SNS-shaped
// Publish/CreateTopic requests over HTTP, records them in a bounded
// in-memory store, and exposes a verification API over the same
// listener. It owns no business logic beyond wiring config, logging,
// the store, and the HTTP server together.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dwalleck/TopicTracker/internal/adapter"
	"github.com/dwalleck/TopicTracker/internal/config"
	httpapi "github.com/dwalleck/TopicTracker/internal/api/http"
	"github.com/dwalleck/TopicTracker/internal/logger"
	"github.com/dwalleck/TopicTracker/internal/store"
	"github.com/dwalleck/TopicTracker/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")

	// config.Load defines the config flags and parses the command line,
	// which also sets -version.
	cfg, err := config.Load()
	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := logger.Init(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.WithComponent("server")

	s, err := store.New(cfg.Capacity)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}

	a := adapter.New(s, adapter.WithLogger(logger.WithComponent("adapter")))

	srv := httpapi.NewServer(cfg.ListenAddr, a, s, cfg.VerificationPrefix)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	log.Info().
		Str("listen_addr", cfg.ListenAddr).
		Str("verification_prefix", cfg.VerificationPrefix).
		Int("capacity", cfg.Capacity).
		Msg("ready")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stop server: %w", err)
	}

	return nil
}
