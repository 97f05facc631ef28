// Package scheduler refreshes fantasy data on a cron schedule and archives
// a text report after every run.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	service "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/domain/types"
	"github.com/okian/moodmeter/pkg/logger"
	"github.com/okian/moodmeter/pkg/metrics"
)

const (
	jobName          = "refresh"
	reportNameLayout = "20060102_150405"
	runTimeout       = 2 * time.Minute
)

// Service is what a scheduled run needs from the application service.
type Service interface {
	Refresh(ctx context.Context) (types.RosterRefresh, error)
	Report(ctx context.Context) (string, error)
}

// Scheduler runs the refresh job.
type Scheduler struct {
	s          gocron.Scheduler
	svc        Service
	cron       string
	loc        *time.Location
	reportsDir string
	clock      clockwork.Clock
	logger     logger.Logger
}

// New creates a scheduler running svc on the standard five-field cron
// expression. The job is registered by Start.
func New(svc Service, cron string, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		svc:   svc,
		cron:  cron,
		loc:   time.UTC,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("scheduler")
	}

	gs, err := gocron.NewScheduler(
		gocron.WithLocation(s.loc),
		gocron.WithClock(s.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.s = gs
	return s, nil
}

// Start registers the refresh job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.cron, false),
		gocron.NewTask(s.run),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	s.s.Start()
	s.logger.Info(context.Background(), "scheduler started",
		logger.String("cron", s.cron),
		logger.String("location", s.loc.String()),
	)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job.
func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error(ctx, "scheduled run failed", logger.Error(err))
	}
}

// RunOnce refreshes the fantasy team and writes the report. A failed
// refresh is logged and the report is built from the current document.
// It returns the report path, or "" when no reports directory is set.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	res, err := s.svc.Refresh(ctx)
	switch {
	case err == nil:
		s.logger.Info(ctx, "fantasy team refreshed",
			logger.String("team", res.Name),
			logger.String("record", res.Record),
		)
	case errors.Is(err, service.ErrRefreshUnavailable):
		s.logger.Debug(ctx, "fantasy refresh skipped", logger.Error(err))
	default:
		s.logger.Warn(ctx, "fantasy refresh failed, scoring the current document", logger.Error(err))
	}

	report, err := s.svc.Report(ctx)
	if err != nil {
		metrics.RecordSchedulerRun(jobName, false)
		return "", fmt.Errorf("build report: %w", err)
	}

	path, err := s.writeReport(report)
	if err != nil {
		metrics.RecordSchedulerRun(jobName, false)
		return "", err
	}
	metrics.RecordSchedulerRun(jobName, true)
	if path != "" {
		s.logger.Info(ctx, "report saved", logger.String("path", path))
	}
	return path, nil
}

func (s *Scheduler) writeReport(report string) (string, error) {
	if s.reportsDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	name := fmt.Sprintf("depression_%s.txt", s.clock.Now().In(s.loc).Format(reportNameLayout))
	path := filepath.Join(s.reportsDir, name)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
