package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/birkaops/birka/internal/buildinfo"
	"github.com/birkaops/birka/internal/client/cli"
	"github.com/birkaops/birka/internal/client/config"
	"github.com/birkaops/birka/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, sync := newLogger(cfg)
	defer sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}

// newLogger writes to a rotated file when one is configured and to stderr
// otherwise.
func newLogger(cfg *config.Config) (logging.Logger, func()) {
	if cfg.LogFile != "" {
		z := logging.NewZapLogger(cfg.LogFile, cfg.Debug, false)
		return z, func() { _ = z.Sync() }
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return logging.NewSlogLogger(slog.New(h)), func() {}
}
