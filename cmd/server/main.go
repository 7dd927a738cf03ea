package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/N-Varsha-Nayak/jobnotify/internal/config"
	"github.com/N-Varsha-Nayak/jobnotify/internal/database"
	"github.com/N-Varsha-Nayak/jobnotify/internal/handler/health"
	"github.com/N-Varsha-Nayak/jobnotify/internal/hits"
	"github.com/N-Varsha-Nayak/jobnotify/internal/server"
	"github.com/N-Varsha-Nayak/jobnotify/internal/spa"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("serving root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("serving root %s is not a directory", cfg.Root)
	}
	root := os.DirFS(cfg.Root)
	table := spa.NewTable(cfg.Index, cfg.Routes...)

	opts := server.Options{
		Addr:  cfg.HTTPAddr,
		Root:  root,
		Table: table,
		Docs:  cfg.DocsEnabled,
		Checks: map[string]health.Checker{
			"index": server.IndexChecker(root, cfg.Index),
		},
	}

	// --- SQLite (optional) ---
	if cfg.HitsDB != "" {
		db, err := database.Open(ctx, cfg.HitsDB)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		store, err := hits.Open(ctx, db)
		if err != nil {
			return fmt.Errorf("opening hit store: %w", err)
		}
		opts.Hits = store
		opts.Checks["hits"] = store
		logger.Info("recording hits", "path", cfg.HitsDB)
	}

	// --- HTTP Server ---
	srv := server.New(logger, opts)

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	url := server.URL(ln.Addr())
	logger.Info("serving", "url", url, "root", cfg.Root, "routes", table.Prefixes())
	if prefixes := table.Prefixes(); len(prefixes) > 0 {
		logger.Info(fmt.Sprintf("open %s then navigate to a route such as %s%s", url, url, prefixes[0]))
	} else {
		logger.Info(fmt.Sprintf("open %s", url))
	}

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(ln)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
