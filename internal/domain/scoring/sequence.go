package scoring

import (
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
)

// Timed pairs an event with its position-derived age in days.
type Timed[T any] struct {
	Event   T
	DaysAgo int
}

// Sequence maps a most-recent-first list to (event, age) pairs where the
// age is the list index. Order is preserved.
func Sequence[T any](events []T) []Timed[T] {
	out := make([]Timed[T], len(events))
	for i, e := range events {
		out[i] = Timed[T]{Event: e, DaysAgo: i}
	}
	return out
}

// gameAge prefers the game's own timestamp and falls back to its position.
func gameAge(t Timed[model.Game], now time.Time) Age {
	if t.Event.PlayedAt != nil {
		return AgeSince(*t.Event.PlayedAt, now)
	}
	return DaysAgo(float64(t.DaysAgo))
}

// positionAge ages an optionally timestamped event.
func positionAge(at *time.Time, index int, now time.Time) Age {
	if at != nil {
		return AgeSince(*at, now)
	}
	return DaysAgo(float64(index))
}
