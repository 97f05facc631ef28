package scoring

import "github.com/okian/moodmeter/internal/domain/types"

type band struct {
	upTo  float64
	level types.Level
}

// bands are ascending and inclusive of their upper bound; anything above the
// last one is a crisis.
var bands = []band{ //nolint:gochecknoglobals // fixed lookup table
	{upTo: -20, level: types.Level{Emoji: "🎉", Label: "Absolutely Ecstatic!"}},
	{upTo: -10, level: types.Level{Emoji: "😄", Label: "Feeling Amazing!"}},
	{upTo: 10, level: types.Level{Emoji: "😊", Label: "Feeling Great!"}},
	{upTo: 25, level: types.Level{Emoji: "😐", Label: "Mildly Disappointed"}},
	{upTo: 50, level: types.Level{Emoji: "😔", Label: "Pretty Depressed"}},
	{upTo: 75, level: types.Level{Emoji: "😢", Label: "Very Depressed"}},
	{upTo: 100, level: types.Level{Emoji: "😭", Label: "Rock Bottom"}},
}

var crisis = types.Level{Emoji: "💀", Label: "Call for Help"} //nolint:gochecknoglobals // fixed lookup value

// Classify maps any score to exactly one level.
func Classify(score float64) types.Level {
	for _, b := range bands {
		if score <= b.upTo {
			return b.level
		}
	}
	return crisis
}

// LevelOf classifies an aggregate: a negative raw total selects the
// mood-improving bands, otherwise the display total is used.
func LevelOf(agg types.Aggregate) types.Level {
	if agg.Raw < 0 {
		return Classify(agg.Raw)
	}
	return Classify(agg.Total)
}
