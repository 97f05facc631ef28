// Package service provides the core business service that implements
// the dependencies required by the HTTP API, the scheduler and the CLI.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/moodmeter/internal/adapters/espn"
	"github.com/okian/moodmeter/internal/adapters/repository"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/internal/domain/model"
	"github.com/okian/moodmeter/internal/domain/scoring"
	"github.com/okian/moodmeter/internal/domain/types"
	"github.com/okian/moodmeter/pkg/logger"
	"github.com/okian/moodmeter/pkg/metrics"
)

// RosterSource fetches the fantasy roster team from its league.
type RosterSource interface {
	MyTeam(ctx context.Context) (espn.FantasyTeam, error)
}

// RosterFactory builds a RosterSource from resolved league credentials.
type RosterFactory func(creds config.ESPN) RosterSource

// Service holds the current snapshot document and scores it on demand.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	mapper *repository.Mapper
	scorer scoring.Scorer
	clock  clockwork.Clock
	loc    *time.Location

	// Fantasy league
	espnEnabled   bool
	espnCreds     config.ESPN
	rosterFactory RosterFactory

	// State
	started  bool
	doc      *repository.Document
	snapshot model.Snapshot
	passes   int
	last     types.Aggregate

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the document store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMapper sets the document to snapshot mapper.
func WithMapper(m *repository.Mapper) Option {
	return func(s *Service) {
		if m != nil {
			s.mapper = m
		}
	}
}

// WithScorer sets the scoring engine.
func WithScorer(scorer scoring.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithClock sets the clock that decides "now" for each scoring pass.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the zone that "now" is read in, which decides the
// calendar month for season checks.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithESPN enables fantasy refreshes. creds take precedence over the
// credentials stored in the document. A nil factory uses the ESPN API.
func WithESPN(creds config.ESPN, factory RosterFactory, opts ...espn.Option) Option {
	return func(s *Service) {
		s.espnEnabled = true
		s.espnCreds = creds
		if factory == nil {
			factory = func(c config.ESPN) RosterSource {
				return espn.NewAPI(espn.NewClient(c, opts...))
			}
		}
		s.rosterFactory = factory
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewFileStore("teams_config.json"),
		mapper: repository.NewMapper(nil, time.UTC),
		scorer: scoring.NewEngine(),
		clock:  clockwork.NewRealClock(),
		loc:    time.UTC,
		logger: nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the document once and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting mood meter service...")

	doc, snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.doc, s.snapshot = doc, snap
	s.started = true

	s.logger.Info(ctx, "mood meter service started",
		logger.Int("teams", len(snap.Teams)),
		logger.Bool("driver", snap.Driver != nil),
		logger.Bool("roster", snap.Roster != nil),
		logger.Bool("espn", s.espnEnabled),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "mood meter service stopped")
}

// Reload re-reads the document from the store.
func (s *Service) Reload(ctx context.Context) error {
	if !s.isStarted() {
		return ErrNotStarted
	}

	doc, snap, err := s.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.doc, s.snapshot = doc, snap
	s.mu.Unlock()

	s.logger.Info(ctx, "document reloaded", logger.Int("entities", snap.Len()))
	return nil
}

// Depression runs one scoring pass and returns the combined result.
func (s *Service) Depression(ctx context.Context) (types.Depression, error) {
	res, _, err := s.score(ctx)
	if err != nil {
		return types.Depression{}, err
	}
	return types.Depression{
		Score:     round1(res.Aggregate.Total),
		RawScore:  res.Aggregate.Raw,
		Level:     res.Level.Label,
		Emoji:     res.Level.Emoji,
		Breakdown: res.Aggregate.Sources,
		Timestamp: res.Aggregate.At,
	}, nil
}

// Teams scores every entity and returns one view per entity: teams first,
// then the driver and the fantasy team.
func (s *Service) Teams(ctx context.Context) ([]types.EntityView, error) {
	res, snap, err := s.score(ctx)
	if err != nil {
		return nil, err
	}

	scored := matchScored(res.Entities)
	views := make([]types.EntityView, 0, len(res.Entities))
	for t := range snap.Teams {
		views = append(views, teamView(&snap.Teams[t], scored(types.KindTeam, snap.Teams[t].Name)))
	}
	if snap.Driver != nil {
		views = append(views, driverView(snap.Driver, scored(types.KindDriver, snap.Driver.Name)))
	}
	if snap.Roster != nil {
		views = append(views, rosterView(snap.Roster, scored(types.KindRoster, snap.Roster.Name)))
	}
	return views, nil
}

// matchScored pairs entities with their scores by kind and name, in order
// for repeated names. An entity the scorer left out gets a zero score.
func matchScored(entities []scoring.Scored) func(kind, name string) scoring.Scored {
	type key struct{ kind, name string }
	queue := make(map[key][]scoring.Scored, len(entities))
	for _, e := range entities {
		k := key{e.Kind, e.Name}
		queue[k] = append(queue[k], e)
	}
	return func(kind, name string) scoring.Scored {
		k := key{kind, name}
		q := queue[k]
		if len(q) == 0 {
			return scoring.Scored{Name: name, Kind: kind}
		}
		queue[k] = q[1:]
		return q[0]
	}
}

// Report renders the text report for one scoring pass.
func (s *Service) Report(ctx context.Context) (string, error) {
	res, _, err := s.score(ctx)
	if err != nil {
		return "", err
	}
	return scoring.Report(res.Aggregate, res.Level), nil
}

// Refresh pulls the fantasy team from its league, stores it in the
// document and rescans. The existing document is kept on failure.
func (s *Service) Refresh(ctx context.Context) (types.RosterRefresh, error) {
	if !s.isStarted() {
		return types.RosterRefresh{}, ErrNotStarted
	}
	if !s.espnEnabled {
		return types.RosterRefresh{}, ErrRefreshUnavailable
	}

	s.mu.RLock()
	creds := s.espnCreds.Merge(documentCredentials(s.doc))
	s.mu.RUnlock()
	if !creds.Configured() {
		return types.RosterRefresh{}, fmt.Errorf("%w: %w", ErrRefreshUnavailable, espn.ErrNotConfigured)
	}

	start := s.clock.Now()
	team, err := s.rosterFactory(creds).MyTeam(ctx)
	if err != nil {
		metrics.RecordRefresh(false, msSince(s.clock, start))
		metrics.RecordErrorByComponent("service", "refresh")
		s.logger.Warn(ctx, "fantasy refresh failed", logger.Error(err))
		return types.RosterRefresh{}, fmt.Errorf("refresh fantasy team: %w", err)
	}

	err = s.Update(ctx, func(doc *repository.Document) error {
		doc.ApplyRoster(repository.RosterRecord{
			Name:   team.Name,
			Wins:   team.Wins,
			Losses: team.Losses,
			Ties:   team.Ties,
			Streak: team.Streak,
		})
		return nil
	})
	if err != nil {
		metrics.RecordRefresh(false, msSince(s.clock, start))
		return types.RosterRefresh{}, err
	}
	metrics.RecordRefresh(true, msSince(s.clock, start))

	s.logger.Info(ctx, "fantasy team refreshed",
		logger.String("team", team.Name),
		logger.String("record", team.Record()),
		logger.Int("week", team.CurrentWeek),
	)
	return types.RosterRefresh{
		Name:   team.Name,
		Record: team.Record(),
		Week:   team.CurrentWeek,
		Streak: team.Streak,
	}, nil
}

// Update applies fn to a copy of the document, saves it, and swaps it in.
// Nothing changes if fn or the save fails.
func (s *Service) Update(ctx context.Context, fn func(doc *repository.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	doc := s.doc.Clone()
	if err := fn(doc); err != nil {
		return err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	snap, skipped := s.mapper.Snapshot(doc)
	s.logSkipped(ctx, skipped)
	s.doc, s.snapshot = doc, snap
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"espn":    s.espnEnabled,
		"passes":  s.passes,
	}

	if s.started {
		stats["teams"] = len(s.snapshot.Teams)
		stats["driver"] = s.snapshot.Driver != nil
		stats["roster"] = s.snapshot.Roster != nil
	}
	if s.passes > 0 {
		stats["lastScore"] = s.last.Total
		stats["lastRawScore"] = s.last.Raw
		stats["lastPass"] = s.last.At
	}

	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) load(ctx context.Context) (*repository.Document, model.Snapshot, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "load")
		return nil, model.Snapshot{}, fmt.Errorf("load document: %w", err)
	}
	snap, skipped := s.mapper.Snapshot(doc)
	s.logSkipped(ctx, skipped)

	metrics.UpdateEntityCount(types.KindTeam, len(snap.Teams))
	metrics.UpdateEntityCount(types.KindDriver, boolCount(snap.Driver != nil))
	metrics.UpdateEntityCount(types.KindRoster, boolCount(snap.Roster != nil))
	return doc, snap, nil
}

func (s *Service) logSkipped(ctx context.Context, skipped []repository.Skipped) {
	for _, sk := range skipped {
		s.logger.Warn(ctx, "skipping team entry",
			logger.Int("index", sk.Index),
			logger.String("name", sk.Name),
			logger.String("reason", sk.Reason),
		)
	}
}

// score runs one pass over the current snapshot and returns the snapshot
// it scored, whose entities line up with the result.
func (s *Service) score(ctx context.Context) (scoring.Result, model.Snapshot, error) {
	s.mu.RLock()
	started, snap := s.started, s.snapshot
	s.mu.RUnlock()
	if !started {
		return scoring.Result{}, model.Snapshot{}, ErrNotStarted
	}

	start := s.clock.Now()
	res, err := s.scorer.Score(ctx, scoring.Input{Snapshot: snap, Now: start.In(s.loc)})
	if err != nil {
		metrics.RecordScoringError()
		metrics.RecordErrorByComponent("service", "score")
		return scoring.Result{}, model.Snapshot{}, err
	}

	metrics.RecordScoringPass(msSince(s.clock, start), res.Aggregate.Total, res.Aggregate.Raw)
	metrics.ResetSourceScores()
	for _, e := range res.Entities {
		metrics.UpdateSourceScore(e.Name, e.Kind, e.Score)
	}

	s.mu.Lock()
	s.passes++
	s.last = res.Aggregate
	s.mu.Unlock()

	s.logger.Debug(ctx, "scoring pass complete",
		logger.Float64("score", res.Aggregate.Total),
		logger.Float64("raw", res.Aggregate.Raw),
		logger.String("level", res.Level.Label),
	)
	return res, snap, nil
}

func documentCredentials(doc *repository.Document) config.ESPN {
	if doc == nil || doc.Fantasy == nil || doc.Fantasy.ESPN == nil {
		return config.ESPN{}
	}
	e := doc.Fantasy.ESPN
	name := e.TeamName
	if name == "" {
		name = doc.Fantasy.Name
	}
	return config.ESPN{
		LeagueID: e.LeagueID.String(),
		Year:     e.Year,
		TeamID:   e.TeamID,
		TeamName: name,
		SWID:     e.SWID,
		S2:       e.S2,
	}
}

func teamView(t *model.Team, sc scoring.Scored) types.EntityView {
	played := t.Wins + t.Losses + t.Ties
	rivalryLosses := make([]string, 0, len(t.RivalryLosses))
	for _, rl := range t.RivalryLosses {
		rivalryLosses = append(rivalryLosses, rl.Opponent)
	}
	return types.EntityView{
		Name:                t.Name,
		Kind:                types.KindTeam,
		Sport:               string(t.Sport),
		Profile:             t.Profile.String(),
		Wins:                t.Wins,
		Losses:              t.Losses,
		Ties:                t.Ties,
		Record:              t.RecordString(),
		WinPercentage:       percent(t.Wins, played),
		RecentStreak:        outcomeCodes(t.Games),
		Points:              round1(sc.Score),
		Breakdown:           sc.Breakdown,
		ExpectedPerformance: t.ExpectedPerformance,
		Expectations:        t.Expectations,
		Rivals:              t.Rivals,
		RecentRivalryLosses: rivalryLosses,
		InterestLevel:       t.InterestLevel,
		Notes:               t.Notes,
	}
}

func driverView(d *model.Driver, sc scoring.Scored) types.EntityView {
	var wins, others int
	codes := make([]string, 0, len(d.Races))
	for _, r := range d.Races {
		codes = append(codes, r.Code)
		switch {
		case r.Code == model.RaceWin:
			wins++
		case !r.Podium():
			others++
		}
	}
	return types.EntityView{
		Name:                 d.Name,
		Kind:                 types.KindDriver,
		Sport:                string(model.SportF1),
		Profile:              model.ProfileFor(model.SportF1, true).String(),
		Wins:                 wins,
		Losses:               others,
		Record:               d.PositionString(),
		WinPercentage:        percent(wins, len(d.Races)),
		RecentStreak:         codes,
		Points:               round1(sc.Score),
		Breakdown:            sc.Breakdown,
		ExpectedPerformance:  d.ExpectedPerformance,
		Expectations:         d.Expectations,
		Rivals:               d.Rivals,
		ChampionshipPosition: d.ChampionshipPosition,
		RecentDNFs:           d.DNFs,
		Notes:                d.Notes,
	}
}

func rosterView(r *model.Roster, sc scoring.Scored) types.EntityView {
	return types.EntityView{
		Name:                r.Name,
		Kind:                types.KindRoster,
		Sport:               string(model.SportFantasy),
		Wins:                r.Wins,
		Losses:              r.Losses,
		Ties:                r.Ties,
		Record:              r.RecordString(),
		WinPercentage:       percent(r.Wins, r.Wins+r.Losses),
		RecentStreak:        outcomeCodes(r.Games),
		Points:              round1(sc.Score),
		Breakdown:           sc.Breakdown,
		ExpectedPerformance: r.ExpectedPerformance,
		Expectations:        r.Expectations,
		Notes:               r.Notes,
	}
}

func outcomeCodes(games []model.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = string(g.Outcome)
	}
	return out
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func msSince(clock clockwork.Clock, start time.Time) float64 {
	return float64(clock.Since(start).Microseconds()) / 1000
}
