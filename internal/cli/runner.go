package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/okian/moodmeter/internal/adapters/espn"
	"github.com/okian/moodmeter/internal/adapters/repository"
	service "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/internal/domain/scoring"
	"github.com/okian/moodmeter/pkg/logger"
)

// Runner executes one moodctl invocation.
type Runner struct {
	cfg     *config.Config
	out     io.Writer
	clock   clockwork.Clock
	factory service.RosterFactory
	espnOpt []espn.Option
	logger  logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where the report and messages are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithClock sets the clock used for scoring and update timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithRosterFactory replaces the ESPN league client.
func WithRosterFactory(f service.RosterFactory) Option {
	return func(r *Runner) {
		r.factory = f
	}
}

// WithESPNOptions configures the ESPN client built by the default factory.
func WithESPNOptions(opts ...espn.Option) Option {
	return func(r *Runner) {
		r.espnOpt = append(r.espnOpt, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner over cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:   cfg,
		out:   os.Stdout,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Named("moodctl")
	}
	return r
}

// Run applies o: help output, a fantasy refresh, record updates, and
// finally the report or the JSON score.
func (r *Runner) Run(ctx context.Context, o Options) error {
	if o.Help {
		ShowHelp(r.out)
		return nil
	}
	if o.ESPNHelp {
		ShowESPNHelp(r.out)
		return nil
	}

	svc, err := r.newService(o)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	defer svc.Stop()

	if o.RefreshFantasy {
		res, err := svc.Refresh(ctx)
		if err != nil {
			// The report is still printed from the stored record.
			fmt.Fprintf(r.out, "Warning: could not refresh fantasy data: %v\n\n", err)
		} else {
			fmt.Fprintf(r.out, "Refreshed %s: %s\n\n", res.Name, res.Record)
		}
	}

	if err := r.applyUpdates(ctx, svc, o); err != nil {
		return err
	}

	if o.JSON {
		dep, err := svc.Depression(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dep); err != nil {
			return fmt.Errorf("encode score: %w", err)
		}
		return nil
	}

	report, err := svc.Report(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, report)
	return nil
}

func (r *Runner) newService(o Options) (*service.Service, error) {
	path := r.cfg.TeamsFile
	if o.Config != "" {
		path = o.Config
	}
	loc, err := r.cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithStore(repository.NewFileStore(path)),
		service.WithMapper(repository.NewMapper(r.cfg.IsIndividualImpact, loc)),
		service.WithLocation(loc),
		service.WithScorer(scoring.NewEngine(scoring.WithDecayRate(r.cfg.DecayRate))),
		service.WithClock(r.clock),
		service.WithLogger(r.logger),
	}
	if r.cfg.ESPNEnabled && !o.NoESPN {
		creds, err := config.LoadESPN()
		if err != nil {
			return nil, err
		}
		espnOpts := append([]espn.Option{espn.WithTimeout(r.cfg.ESPNTimeout())}, r.espnOpt...)
		opts = append(opts, service.WithESPN(creds, r.factory, espnOpts...))
	}
	return service.New(opts...), nil
}

// applyUpdates saves every requested change in one document write.
func (r *Runner) applyUpdates(ctx context.Context, svc *service.Service, o Options) error {
	if o.UpdateTeam == "" && !o.HasDriverUpdate() && !o.HasRosterUpdate() {
		return nil
	}

	var messages []string
	err := svc.Update(ctx, func(doc *repository.Document) error {
		if o.UpdateTeam != "" {
			u := repository.TeamUpdate{
				Wins:        o.Wins,
				Losses:      o.Losses,
				Ties:        o.Ties,
				RivalryLoss: o.RivalryLoss,
			}
			if o.RivalryLoss != "" {
				now := r.clock.Now().UTC()
				u.RivalryLossAt = &now
			}
			name, err := doc.UpdateTeam(o.UpdateTeam, u)
			if err != nil {
				return fmt.Errorf("update team: %w", err)
			}
			messages = append(messages, "Updated "+name)
		}
		if o.HasDriverUpdate() {
			if err := doc.UpdateDriver(o.F1Position, o.F1DNFs); err != nil {
				return fmt.Errorf("update driver: %w", err)
			}
			messages = append(messages, "Updated "+doc.Driver.Name)
		}
		if o.HasRosterUpdate() {
			if err := doc.UpdateRoster(o.FantasyWins, o.FantasyLosses); err != nil {
				return fmt.Errorf("update fantasy team: %w", err)
			}
			messages = append(messages, "Updated "+doc.Fantasy.Name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, m := range messages {
		fmt.Fprintln(r.out, m)
	}
	fmt.Fprintln(r.out)
	return nil
}
