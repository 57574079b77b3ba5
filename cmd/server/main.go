package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"govinda/internal/platform/config"
	"govinda/internal/platform/httpserver"
	"govinda/internal/platform/logger"
)

// main loads configuration, wires the stores and services and runs the HTTP
// server next to the outbox relay until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load(os.Getenv("GOVINDA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a := newApp(cfg, log, infra, reg)
	srv := httpserver.New(cfg.Addr, a.router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.ShutdownTimeout, log)
	})
	if a.relay != nil {
		g.Go(func() error {
			return a.relay.Run(gctx)
		})
	}
	if infra.pruner != nil {
		g.Go(func() error {
			return pruneOutbox(gctx, infra.pruner, log)
		})
	}
	return g.Wait()
}
