package scoring

import (
	"math"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
	"github.com/okian/moodmeter/internal/domain/types"
)

// Driver breakdown labels.
const (
	LabelChampionshipPosition = "Championship Position"
	LabelChampionshipLeader   = "Championship Leader (reduces depression)"
	LabelDriverGap            = "Expectation Gap (Should be #1)"
	LabelPodiums              = "Recent Wins/Podiums (reduces depression)"
	LabelDNFs                 = "DNFs (time-weighted)"
	LabelPoorResults          = "Recent Poor Results"
)

// Driver scores an individual competitor at now. Each race counts close to
// independently, so results use coarse age tiers instead of decay.
func (e *Engine) Driver(d *model.Driver, now time.Time) types.EntityScore {
	var b types.Breakdown

	behind := float64(d.ChampionshipPosition - championshipLeaderPos)
	switch {
	case d.ChampionshipPosition > championshipLeaderPos:
		b.Add(LabelChampionshipPosition, behind*positionPenaltyRate)
	case d.ChampionshipPosition == championshipLeaderPos:
		b.Add(LabelChampionshipLeader, leaderBonusDriver)
	}

	if d.ExpectedPerformance >= driverEliteExpected && d.ChampionshipPosition > championshipLeaderPos {
		b.Add(LabelDriverGap, behind*driverGapRate*float64(d.Expectations)/expectationDialScale)
	}

	var podiums, poor float64
	for _, r := range Sequence(d.Races) {
		w := raceTierWeight(positionAge(r.Event.At, r.DaysAgo, now))
		switch r.Event.Code {
		case model.RaceWin:
			podiums += driverWinBonus * w
		case model.RaceSecond:
			podiums += driverSecondBonus * w
		case model.RaceThird:
			podiums += driverThirdBonus * w
		default:
			poor += poorResultPenalty * w
		}
	}
	b.Add(LabelPodiums, podiums)
	b.Add(LabelDNFs, e.dnfPenalty(d, now))
	b.Add(LabelPoorResults, poor)

	return types.EntityScore{
		Score:          b.Total(),
		Breakdown:      b,
		ExpectedWinPct: float64(d.ExpectedPerformance) / expectationDialScale,
	}
}

// dnfPenalty weights retirements by their timestamps when known, else by
// the position of the matching DNF among the recent races. Unplaced
// retirements count as old.
func (e *Engine) dnfPenalty(d *model.Driver, now time.Time) float64 {
	if d.DNFs <= 0 {
		return 0
	}

	var retired []Age
	for _, r := range Sequence(d.Races) {
		if r.Event.Code == model.RaceDNF {
			retired = append(retired, positionAge(r.Event.At, r.DaysAgo, now))
		}
	}
	byPosition := func(i int) Age {
		if i < len(retired) {
			return retired[i]
		}
		return DaysAgo(float64(i))
	}

	var penalty float64
	placed := 0
	if len(d.DNFTimes) > 0 {
		for ; placed < d.DNFs && placed < len(d.DNFTimes); placed++ {
			if at := d.DNFTimes[placed]; at != nil {
				penalty += dnfPenalty * e.dnfWeight(AgeSince(*at, now))
				continue
			}
			penalty += dnfPenalty * raceTierWeight(byPosition(placed))
		}
	} else {
		for ; placed < d.DNFs && placed < len(retired); placed++ {
			penalty += dnfPenalty * raceTierWeight(retired[placed])
		}
	}

	if rest := d.DNFs - placed; rest > 0 {
		penalty += float64(rest) * dnfPenalty * dnfOlderWeight
	}
	return penalty
}

// dnfWeight decays faster than team losses and boosts retirements that are
// only a few hours old.
func (e *Engine) dnfWeight(age Age) float64 {
	if age.Hours >= hoursPerDay {
		return Weight(age, e.decayRate, true)
	}
	w := Weight(age, FreshDNFDecayRate, true)
	if age.Hours < dnfFreshHours {
		w = math.Min(1, w*dnfFreshBoost)
	}
	return w
}

func raceTierWeight(age Age) float64 {
	switch {
	case age.Days > raceOlderDays:
		return raceOldWeight
	case age.Days > raceRecentDays:
		return raceMidWeight
	default:
		return 1
	}
}
