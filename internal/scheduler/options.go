package scheduler

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/moodmeter/pkg/logger"
)

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithLocation sets the time zone the cron expression and report names use.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithReportsDir makes every run write its text report into dir.
func WithReportsDir(dir string) Option {
	return func(s *Scheduler) {
		s.reportsDir = dir
	}
}

// WithClock sets the clock shared with the underlying cron scheduler.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the scheduler.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
