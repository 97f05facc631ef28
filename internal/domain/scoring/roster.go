package scoring

import (
	"fmt"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
	"github.com/okian/moodmeter/internal/domain/types"
)

// Roster breakdown labels.
const (
	LabelRosterLosses    = "Fantasy Losses (time-weighted, context-adjusted)"
	LabelRosterWins      = "Fantasy Wins (reduces depression)"
	LabelRosterGap       = "Fantasy Expectation Gap"
	labelRosterStreakFmt = "Fantasy Losing Streak (%d, time-weighted)"
)

// Roster scores a fantasy roster at now. Rosters always use the standard
// decay and are never individual-impact.
func (e *Engine) Roster(r *model.Roster, now time.Time) types.EntityScore {
	played := r.Wins + r.Losses
	if played == 0 {
		return types.EntityScore{}
	}

	winPct := float64(r.Wins) / float64(played)
	expectedPct := float64(r.ExpectedPerformance) / expectationDialScale
	var ctxMult float64
	switch {
	case winPct > greatWinPct:
		ctxMult = rosterGreatDiscount
	case winPct > okayWinPct:
		ctxMult = rosterOkayDiscount
	default:
		ctxMult = 1
	}

	var b types.Breakdown
	var lossPoints, winPoints float64
	if len(r.Games) > 0 {
		recentLosses := 0
		for _, g := range Sequence(r.Games) {
			age := gameAge(g, now)
			w := Weight(age, e.decayRate, false)
			switch g.Event.Outcome {
			case model.Win:
				winPoints -= rosterWinBase * w
			case model.Loss:
				recentLosses++
				if age.Days <= 0 {
					w = 1
				}
				lossPoints += rosterLossBase * ctxMult * w
			}
		}
		if rest := r.Losses - recentLosses; rest > 0 {
			lossPoints += float64(rest) * rosterLossBase * ctxMult * olderLossWeight
		}
	} else {
		lossPoints = float64(r.Losses) * rosterLossBase * ctxMult * Weight(DaysAgo(assumedAgeDays), e.decayRate, false)
	}
	b.Add(LabelRosterLosses, lossPoints)
	b.Add(LabelRosterWins, winPoints)

	if gap := expectedPct - winPct; gap > 0 {
		b.Add(LabelRosterGap, gap*rosterGapFactor*float64(r.Expectations)/expectationDialScale)
	}

	n := 0
	var streak float64
	for _, g := range Sequence(r.Games) {
		if g.Event.Outcome != model.Loss {
			break
		}
		n++
		streak += rosterStreakBase * Weight(gameAge(g, now), e.decayRate, false)
	}
	if n > 1 {
		b.Add(fmt.Sprintf(labelRosterStreakFmt, n), streak)
	}

	return types.EntityScore{
		Score:          b.Total(),
		Breakdown:      b,
		WinPct:         winPct,
		ExpectedWinPct: expectedPct,
	}
}
