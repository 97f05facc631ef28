package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
	"github.com/okian/moodmeter/internal/domain/types"
)

// Team breakdown labels.
const (
	LabelLosses           = "Losses (time-weighted, context-adjusted)"
	LabelRecentWins       = "Recent Wins (reduces depression)"
	LabelEliminated       = "Playoff Eliminated"
	LabelFarFromPlayoffs  = "Far from Playoffs"
	LabelClinched         = "Playoff Clinched (reduces depression)"
	LabelLeader           = "Division/Conference Leader (reduces depression)"
	LabelLateSeason       = "Late Season Multiplier"
	LabelExpectationGap   = "Expectation Gap"
	LabelOverperforming   = "Overperforming (reduces depression)"
	LabelRivalryLosses    = "Rivalry Losses (time-weighted)"
	LabelMinimalLosses    = "Recent Consecutive Losses (minimal)"
	LabelMinimalWins      = "Recent Consecutive Wins (minimal)"
	LabelOffseason        = "Offseason (reduced impact)"
	labelDroughtFmt       = "Long Championship Drought (%d years)"
	labelLongLoseFmt      = "Long Losing Streak (%d games)"
	labelLoseFmt          = "Losing Streak (%d games)"
	labelLosingStreakFmt  = "Losing Streak (%d games, time-weighted)"
	labelWinningStreakFmt = "Winning Streak (%d games, time-weighted)"
)

// Team scores one team at now.
func (e *Engine) Team(t *model.Team, now time.Time) types.EntityScore {
	played := t.Wins + t.Losses
	if played == 0 {
		return types.EntityScore{}
	}

	winPct := float64(t.Wins) / float64(played)
	expectedPct := float64(t.ExpectedPerformance) / 10
	individual := t.Profile.Has(model.ProfileIndividualImpact)
	lowEvent := t.Profile.Has(model.ProfileLowEventCount)
	interest := t.InterestLevel
	highExp := t.Expectations >= highExpectationsCutover || t.ExpectedPerformance >= highExpectationsCutover
	ctxMult := lossDiscount(winPct, highExp)
	lossBase := baseLossFor(individual, lowEvent) * interest * ctxMult

	var b types.Breakdown

	// Per-game losses and wins.
	var lossPoints, winPoints float64
	if len(t.Games) > 0 {
		recentLosses := 0
		winBase := baseWinFor(individual, lowEvent)
		for _, g := range Sequence(t.Games) {
			age := gameAge(g, now)
			w := Weight(age, e.decayRate, lowEvent)
			switch g.Event.Outcome {
			case model.Win:
				if individual && age.Days > individualAgeCutoffDays {
					w = individualOldWinWeight
				}
				winPoints -= winBase * interest * w * winOpponentMult(t, &g.Event) * winGameMult(&g.Event)
			case model.Loss:
				recentLosses++
				if individual && age.Days > individualAgeCutoffDays {
					w = individualOldLossWeight
				}
				lossPoints += lossBase * w * lossOpponentMult(t, &g.Event, highExp) * lossGameMult(&g.Event)
			}
		}
		if rest := t.Losses - recentLosses; rest > 0 {
			lossPoints += float64(rest) * lossBase * olderLossWeight
		}
	} else {
		lossPoints = float64(t.Losses) * lossBase * Weight(DaysAgo(assumedAgeDays), e.decayRate, lowEvent)
	}
	b.Add(LabelLosses, lossPoints)
	b.Add(LabelRecentWins, winPoints)

	// Season standing, mutually exclusive in priority order.
	switch {
	case t.PlayoffEliminated:
		b.Add(LabelEliminated, eliminatedPenalty*interest)
	case t.GamesBack != nil && *t.GamesBack > farFromPlayoffsBack:
		b.Add(LabelFarFromPlayoffs, farFromPlayoffsPenalty*interest)
	case t.PlayoffClinched:
		b.Add(LabelClinched, clinchedBonus*interest)
	case t.DivisionLeader || t.ConferenceLeader:
		b.Add(LabelLeader, leaderBonus*interest)
	}

	// The late-season extra is applied to losses only.
	switch {
	case t.SeasonProgress > lateSeasonProgress:
		b.Add(LabelLateSeason, (lateSeasonMult-1)*lossPoints)
	case t.SeasonProgress > midSeasonProgress:
		b.Add(LabelLateSeason, (midSeasonMult-1)*lossPoints)
	}

	if t.ChampionshipDrought > droughtYears {
		b.Add(fmt.Sprintf(labelDroughtFmt, t.ChampionshipDrought), droughtPenalty*interest)
	}
	switch {
	case t.CurrentLoseStreak >= longLoseStreakGames:
		b.Add(fmt.Sprintf(labelLongLoseFmt, t.CurrentLoseStreak), longLoseStreakPenalty*interest)
	case t.CurrentLoseStreak >= loseStreakGames:
		b.Add(fmt.Sprintf(labelLoseFmt, t.CurrentLoseStreak), loseStreakPenalty*interest)
	}

	gap := expectedPct - winPct
	switch {
	case gap > 0:
		penalty := gap * gapFactor(t.ExpectedPerformance) * interest * float64(t.Expectations) / expectationDialScale
		if penalty > 0 {
			b.Add(LabelExpectationGap, penalty)
		}
	case gap < -overperformMargin:
		b.Add(LabelOverperforming, gap*overperformBonusFactor*interest)
	}

	if len(t.RivalryLosses) > 0 {
		rivalryBase := math.Max(0, lossBase*(rivalryMultiplier*interest*ctxMult-1))
		var penalty float64
		for i, rl := range t.RivalryLosses {
			penalty += rivalryBase * Weight(positionAge(rl.At, i, now), e.decayRate, lowEvent)
		}
		b.Add(LabelRivalryLosses, penalty)
	}

	if individual {
		e.minimalStreaks(&b, t, now)
	} else {
		e.losingStreak(&b, t, now, ctxMult, lowEvent)
		e.winningStreak(&b, t, now, lowEvent)
	}

	score := b.Total()
	if t.Sport.InOffseason(now.Month()) {
		final := score * offseasonMultiplier
		b.Add(LabelOffseason, final-score)
		score = final
	}

	return types.EntityScore{
		Score:          score,
		Breakdown:      b,
		WinPct:         winPct,
		ExpectedWinPct: expectedPct,
	}
}

// losingStreak scores consecutive losses counted back from the latest game.
func (e *Engine) losingStreak(b *types.Breakdown, t *model.Team, now time.Time, ctxMult float64, lowEvent bool) {
	n := 0
	var penalty float64
	for _, g := range Sequence(t.Games) {
		if g.Event.Outcome != model.Loss {
			break
		}
		n++
		age := gameAge(g, now)
		w := e.streakWeight(age, lowEvent)
		if n <= streakFreshLossDepth && age.Days <= streakFreshLossDays {
			w *= streakFreshLossBoost
		}
		penalty += streakLossBase * t.InterestLevel * ctxMult * w
	}
	if n > 1 {
		b.Add(fmt.Sprintf(labelLosingStreakFmt, n), penalty)
	}
}

// winningStreak is the mood-improving mirror of losingStreak.
func (e *Engine) winningStreak(b *types.Breakdown, t *model.Team, now time.Time, lowEvent bool) {
	base := streakWinBase
	if lowEvent {
		base = streakWinBaseLowEvent
	}
	n := 0
	var bonus float64
	for _, g := range Sequence(t.Games) {
		if g.Event.Outcome != model.Win {
			break
		}
		n++
		age := gameAge(g, now)
		w := e.streakWeight(age, lowEvent)
		if n <= streakFreshWinDepth && age.Days <= streakFreshWinDays {
			w *= streakFreshWinBoost
		}
		bonus -= base * t.InterestLevel * w
	}
	if n > 1 {
		b.Add(fmt.Sprintf(labelWinningStreakFmt, n), bonus)
	}
}

// minimalStreaks replaces both streak terms for individual-impact teams.
// Only the first two games of a streak count, and only when under two days
// old.
func (e *Engine) minimalStreaks(b *types.Breakdown, t *model.Team, now time.Time) {
	if len(t.Games) == 0 {
		return
	}
	lead := t.Games[0].Outcome
	if lead != model.Win && lead != model.Loss {
		return
	}

	n := 0
	var points float64
	for _, g := range Sequence(t.Games) {
		if g.Event.Outcome != lead {
			break
		}
		n++
		if n <= streakFreshLossDepth && gameAge(g, now).Days <= streakFreshLossDays {
			if lead == model.Loss {
				points += minimalStreakLoss * t.InterestLevel
			} else {
				points += minimalStreakWin * t.InterestLevel
			}
		}
	}
	if lead == model.Loss {
		b.Add(LabelMinimalLosses, points)
	} else {
		b.Add(LabelMinimalWins, points)
	}
}

// streakWeight pins the two most recent days to fixed weights.
func (e *Engine) streakWeight(age Age, lowEvent bool) float64 {
	switch {
	case age.Days <= 0:
		return 1
	case age.Days == 1 && lowEvent:
		return streakYesterdayLowEvent
	case age.Days == 1:
		return streakYesterdayWeight
	default:
		return Weight(age, e.decayRate, lowEvent)
	}
}

func lossDiscount(winPct float64, highExp bool) float64 {
	switch {
	case winPct > greatWinPct && highExp:
		return greatLossDiscountHigh
	case winPct > greatWinPct:
		return greatLossDiscount
	case winPct > okayWinPct && highExp:
		return okayLossDiscountHigh
	case winPct > okayWinPct:
		return okayLossDiscount
	default:
		return 1
	}
}

func baseLossFor(individual, lowEvent bool) float64 {
	switch {
	case individual && lowEvent:
		return baseLossIndividualLowEvt
	case individual:
		return baseLossIndividual
	case lowEvent:
		return baseLossLowEvent
	default:
		return baseLoss
	}
}

func baseWinFor(individual, lowEvent bool) float64 {
	switch {
	case individual && lowEvent:
		return baseWinIndividualLowEvt
	case individual:
		return baseWinIndividual
	case lowEvent:
		return baseWinLowEvent
	default:
		return baseWin
	}
}

func gapFactor(expected int) float64 {
	switch {
	case expected >= eliteExpectation:
		return eliteGapFactor
	case expected >= solidExpectation:
		return solidGapFactor
	default:
		return lowGapFactor
	}
}

func opponentPct(g *model.Game) (float64, bool) {
	if g.OpponentRecord == nil {
		return 0, false
	}
	return g.OpponentRecord.WinPct()
}

func lossOpponentMult(t *model.Team, g *model.Game, highExp bool) float64 {
	pct, known := opponentPct(g)
	if t.IsRival(g.Opponent) {
		switch {
		case !known:
			return rivalLoss
		case pct < rivalBadPct:
			return rivalBadLoss
		case pct < rivalBelowAvgPct:
			return rivalBelowAvgLoss
		case pct > rivalGreatPct:
			return rivalGreatLoss
		default:
			return rivalLoss
		}
	}
	if !known {
		return 1
	}
	switch {
	case pct > greatOpponentPct && highExp:
		return greatOpponentLossHigh
	case pct > greatOpponentPct:
		return greatOpponentLoss
	case pct > goodOpponentPct && highExp:
		return goodOpponentLossHigh
	case pct > goodOpponentPct:
		return goodOpponentLoss
	case pct < rivalBadPct:
		return badOpponentLoss
	case pct < rivalBelowAvgPct:
		return belowAvgOpponentLoss
	default:
		return 1
	}
}

func winOpponentMult(t *model.Team, g *model.Game) float64 {
	if t.IsRival(g.Opponent) {
		return rivalWin
	}
	if pct, ok := opponentPct(g); ok && pct > strongOpponentWinPct {
		return strongOpponentWin
	}
	return 1
}

func lossGameMult(g *model.Game) float64 {
	m := 1.0
	if g.ComebackLoss {
		m *= comebackLossMult
	}
	if g.BlowoutLoss {
		m *= blowoutLossMult
	}
	if g.Overtime {
		m *= overtimeLossMult
	}
	if g.Margin != nil && absInt(*g.Margin) < closeLossMargin {
		m *= closeLossMult
	}
	if g.Location == model.LocationHome {
		m *= homeLossMult
	}
	return m
}

func winGameMult(g *model.Game) float64 {
	m := 1.0
	if g.ComebackWin {
		m *= comebackWinMult
	}
	if g.BlowoutWin {
		m *= blowoutWinMult
	}
	if g.Overtime {
		m *= overtimeWinMult
	}
	if g.Location == model.LocationAway {
		m *= roadWinMult
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
