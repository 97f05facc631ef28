package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/moodmeter/internal/domain/types"
)

const (
	reportWidth      = 60
	reportTimeLayout = "2006-01-02 15:04:05"
)

// Report renders an aggregate and its level as a plain-text dashboard.
// Sources are listed by score, highest first.
func Report(agg types.Aggregate, level types.Level) string {
	heavy := strings.Repeat("=", reportWidth)
	light := strings.Repeat("-", reportWidth)

	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	line("%s", heavy)
	line("  DEPRESSION DASHBOARD")
	line("%s", heavy)
	line("")
	line("  Depression Score: %.1f", agg.Total)
	line("  Level: %s %s", level.Emoji, level.Label)
	line("")

	if len(agg.Sources) == 0 {
		line("  No depression sources found. You're doing great! 😊")
		line("")
	} else {
		line("  BREAKDOWN BY SOURCE:")
		line("%s", light)
		for _, src := range sortedSources(agg.Sources) {
			if src.Score < 0 {
				line("  %s: %.1f points (reducing depression! 😊)", src.Name, src.Score)
			} else {
				line("  %s: %.1f points", src.Name, src.Score)
			}
			if src.Record != "" {
				line("    Record: %s", src.Record)
			}
			if src.Position != "" {
				line("    Position: %s", src.Position)
			}
			for _, c := range src.Details {
				if c.Points < 0 {
					line("    - %s: %.1f (reduces depression)", c.Label, c.Points)
				} else {
					line("    - %s: +%.1f", c.Label, c.Points)
				}
			}
			line("")
		}
	}

	line("%s", heavy)
	line("  Generated: %s", agg.At.Format(reportTimeLayout))
	sb.WriteString(heavy)
	return sb.String()
}

func sortedSources(in []types.Source) []types.Source {
	out := make([]types.Source, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}
