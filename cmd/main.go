package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // timezone names resolve in minimal images

	"github.com/joho/godotenv"

	"github.com/okian/moodmeter/internal/adapters/espn"
	"github.com/okian/moodmeter/internal/adapters/http/api"
	"github.com/okian/moodmeter/internal/adapters/http/site"
	"github.com/okian/moodmeter/internal/adapters/http/swagger"
	"github.com/okian/moodmeter/internal/adapters/repository"
	app "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/internal/domain/scoring"
	"github.com/okian/moodmeter/internal/scheduler"
	"github.com/okian/moodmeter/pkg/logger"
	"github.com/okian/moodmeter/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	// scoreInterval keeps the score gauges current as events age.
	scoreInterval = time.Minute
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := metrics.RegisterRuntimeCollectors(); err != nil {
		loggerInstance.Warn(ctx, "runtime collectors not registered", logger.Error(err))
	}

	svc, err := newService(cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to configure service", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	if cfg.RefreshEnabled {
		sched, err := newScheduler(cfg, svc)
		if err != nil {
			loggerInstance.Error(ctx, "failed to create scheduler", logger.Error(err))
			return
		}
		if err := sched.Start(); err != nil {
			loggerInstance.Error(ctx, "failed to start scheduler", logger.Error(err))
			return
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				loggerInstance.Warn(context.Background(), "scheduler shutdown failed", logger.Error(err))
			}
		}()
	}

	go startScoreUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc, cfg.CORSOrigins)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Handler(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(shutdownCtx, "server stopped")
}

// newService wires the document store, mapper, engine and ESPN source
// from cfg.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithLogger(log),
		app.WithStore(repository.NewFileStore(cfg.TeamsFile)),
		app.WithMapper(repository.NewMapper(cfg.IsIndividualImpact, loc)),
		app.WithLocation(loc),
		app.WithScorer(scoring.NewEngine(scoring.WithDecayRate(cfg.DecayRate))),
	}
	if cfg.ESPNEnabled {
		creds, err := config.LoadESPN()
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithESPN(creds, nil, espn.WithTimeout(cfg.ESPNTimeout())))
	}
	return app.New(opts...), nil
}

func newScheduler(cfg *config.Config, svc *app.Service) (*scheduler.Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return scheduler.New(svc, cfg.RefreshCron,
		scheduler.WithLocation(loc),
		scheduler.WithReportsDir(cfg.ReportsDir),
	)
}

// startScoreUpdater runs a scoring pass on every tick so the exported
// score gauges follow the time decay.
func startScoreUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(scoreInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Depression(ctx); err != nil && ctx.Err() == nil {
				logger.Get().Warn(ctx, "periodic scoring failed", logger.Error(err))
			}
		}
	}
}
