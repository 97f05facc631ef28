// Package scoring turns entity records into a composite mood score with an
// itemized, explainable breakdown.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
	"github.com/okian/moodmeter/internal/domain/types"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithDecayRate sets the base per-day decay rate used for team and roster
// events. Non-positive rates are ignored.
func WithDecayRate(rate float64) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.decayRate = rate
		}
	}
}

// Input is one scoring pass: a snapshot of entities and the instant they are
// scored at.
type Input struct {
	Snapshot model.Snapshot
	// Now is read once per pass; a zero value means time.Now().
	Now time.Time
}

// Scored is a single entity's result, reported even when its score is zero.
type Scored struct {
	Name   string
	Kind   string
	Status string
	types.EntityScore
}

// Result contains the outcome of a scoring pass.
type Result struct {
	Aggregate types.Aggregate
	Level     types.Level
	Entities  []Scored
}

// Scorer computes a composite score from a snapshot.
type Scorer interface {
	// Score runs one pass, honoring ctx only before any work starts.
	Score(ctx context.Context, in Input) (Result, error)
}

// Engine implements Scorer. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	decayRate float64
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{decayRate: DefaultDecayRate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score scores every entity in the snapshot, aggregates them and classifies
// the result.
func (e *Engine) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("scoring cancelled: %w", err)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	entities := e.scoreAll(in.Snapshot, now)
	agg := Combine(entities, now)
	return Result{
		Aggregate: agg,
		Level:     LevelOf(agg),
		Entities:  entities,
	}, nil
}

func (e *Engine) scoreAll(s model.Snapshot, now time.Time) []Scored {
	out := make([]Scored, 0, s.Len())
	for i := range s.Teams {
		t := &s.Teams[i]
		out = append(out, Scored{
			Name:        t.Name,
			Kind:        types.KindTeam,
			Status:      t.RecordString(),
			EntityScore: e.Team(t, now),
		})
	}
	if s.Driver != nil {
		out = append(out, Scored{
			Name:        s.Driver.Name,
			Kind:        types.KindDriver,
			Status:      s.Driver.PositionString(),
			EntityScore: e.Driver(s.Driver, now),
		})
	}
	if s.Roster != nil {
		out = append(out, Scored{
			Name:        s.Roster.Name,
			Kind:        types.KindRoster,
			Status:      s.Roster.RecordString(),
			EntityScore: e.Roster(s.Roster, now),
		})
	}
	return out
}
