package scoring

// Scoring constants. Positive points deepen the mood, negative points lift it.
const (
	// DefaultDecayRate is the per-day exponential decay rate.
	DefaultDecayRate = 0.3
	// FreshDNFDecayRate applies to retirements under a day old.
	FreshDNFDecayRate = 0.4

	lowEventDecayFactor  = 1.5
	hourMultiplier       = 1.2
	lowEventHourMultiple = 1.5
	hoursPerDay          = 24.0

	offseasonMultiplier = 0.01

	// Context multipliers for losses by win percentage.
	greatWinPct             = 0.6
	okayWinPct              = 0.5
	greatLossDiscount       = 0.5
	greatLossDiscountHigh   = 0.8
	okayLossDiscount        = 0.7
	okayLossDiscountHigh    = 0.9
	highExpectationsCutover = 8

	// Per-event bases.
	baseLoss                 = 2.0
	baseLossLowEvent         = 2.5
	baseLossIndividual       = 3.5
	baseLossIndividualLowEvt = 4.0
	baseWin                  = 5.0
	baseWinLowEvent          = 6.0
	baseWinIndividual        = 7.0
	baseWinIndividualLowEvt  = 8.0

	// Individual-impact entities keep older games at a flat weight.
	individualAgeCutoffDays = 7
	individualOldWinWeight  = 0.5
	individualOldLossWeight = 0.6

	olderLossWeight = 0.2
	assumedAgeDays  = 30

	// Opponent quality thresholds and multipliers.
	rivalBadPct           = 0.35
	rivalBelowAvgPct      = 0.45
	rivalGreatPct         = 0.65
	rivalBadLoss          = 2.2
	rivalBelowAvgLoss     = 2.0
	rivalGreatLoss        = 1.5
	rivalLoss             = 1.8
	greatOpponentPct      = 0.65
	goodOpponentPct       = 0.55
	greatOpponentLossHigh = 1.3
	greatOpponentLoss     = 0.6
	goodOpponentLossHigh  = 1.4
	goodOpponentLoss      = 0.8
	badOpponentLoss       = 1.5
	belowAvgOpponentLoss  = 1.2
	rivalWin              = 1.5
	strongOpponentWinPct  = 0.6
	strongOpponentWin     = 1.3

	// Game context multipliers.
	comebackLossMult = 1.6
	blowoutLossMult  = 1.4
	overtimeLossMult = 1.3
	closeLossMult    = 1.2
	closeLossMargin  = 3
	homeLossMult     = 1.1
	comebackWinMult  = 1.4
	blowoutWinMult   = 1.2
	overtimeWinMult  = 1.3
	roadWinMult      = 1.1

	// Season context.
	eliminatedPenalty      = 7.0
	farFromPlayoffsBack    = 3.0
	farFromPlayoffsPenalty = 3.5
	clinchedBonus          = -10.0
	leaderBonus            = -4.0
	lateSeasonProgress     = 0.75
	midSeasonProgress      = 0.5
	lateSeasonMult         = 1.3
	midSeasonMult          = 1.1

	// History.
	droughtYears          = 20
	droughtPenalty        = 2.0
	longLoseStreakGames   = 5
	longLoseStreakPenalty = 4.0
	loseStreakGames       = 3
	loseStreakPenalty     = 2.0

	// Expectation gap.
	eliteExpectation       = 8
	solidExpectation       = 5
	eliteGapFactor         = 12.0
	solidGapFactor         = 8.0
	lowGapFactor           = 4.0
	overperformMargin      = 0.1
	overperformBonusFactor = 5.0

	// Rivalry losses.
	rivalryMultiplier = 1.8

	// Streaks.
	streakLossBase          = 1.5
	streakYesterdayWeight   = 0.74
	streakYesterdayLowEvent = 0.65
	streakFreshLossBoost    = 1.2
	streakFreshLossDepth    = 2
	streakFreshLossDays     = 1
	streakWinBase           = 4.0
	streakWinBaseLowEvent   = 5.0
	streakFreshWinBoost     = 1.3
	streakFreshWinDepth     = 3
	streakFreshWinDays      = 2
	minimalStreakLoss       = 0.5
	minimalStreakWin        = -1.0

	// Individual competitor.
	positionPenaltyRate   = 1.5
	leaderBonusDriver     = -8.0
	driverEliteExpected   = 9
	driverGapRate         = 5.0
	driverWinBonus        = -15.0
	driverSecondBonus     = -5.0
	driverThirdBonus      = -3.0
	poorResultPenalty     = 4.0
	dnfPenalty            = 6.0
	dnfFreshHours         = 6.0
	dnfFreshBoost         = 1.2
	dnfOlderWeight        = 0.5
	raceRecentDays        = 7
	raceOlderDays         = 14
	raceMidWeight         = 0.7
	raceOldWeight         = 0.5
	expectationDialScale  = 10.0
	championshipLeaderPos = 1

	// Roster team.
	rosterGreatDiscount = 0.4
	rosterOkayDiscount  = 0.6
	rosterLossBase      = 4.0
	rosterWinBase       = 4.0
	rosterGapFactor     = 20.0
	rosterStreakBase    = 5.0
)
