package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okian/moodmeter/internal/cli"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/pkg/logger"
)

const runTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Logs go to stderr so the report and JSON stay clean on stdout.
	if err := logger.InitWithWriter(os.Stderr, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("warn")
	}

	if err := cli.NewRunner(cfg).Run(ctx, opts); err != nil {
		os.Stderr.WriteString("moodctl: " + err.Error() + "\n")
		return 1
	}
	return 0
}
