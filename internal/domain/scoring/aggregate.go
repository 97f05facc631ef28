package scoring

import (
	"math"
	"time"

	"github.com/okian/moodmeter/internal/domain/types"
)

// Combine sums entity scores into an aggregate. Entities scoring exactly
// zero are left out of the source list but never change the total.
func Combine(entities []Scored, at time.Time) types.Aggregate {
	agg := types.Aggregate{At: at, Sources: make([]types.Source, 0, len(entities))}
	for _, e := range entities {
		agg.Raw += e.Score
		if e.Score == 0 {
			continue
		}
		src := types.Source{
			Name:    e.Name,
			Kind:    e.Kind,
			Score:   e.Score,
			Details: e.Breakdown,
		}
		if e.Kind == types.KindDriver {
			src.Position = e.Status
		} else {
			src.Record = e.Status
		}
		agg.Sources = append(agg.Sources, src)
	}
	agg.Total = math.Max(0, agg.Raw)
	return agg
}
