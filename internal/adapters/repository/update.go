package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Minimum name similarity for a fuzzy team match.
const matchThreshold = 0.6

// TeamUpdate carries the fields to change on a team. Nil fields are left
// untouched.
type TeamUpdate struct {
	Wins   *int
	Losses *int
	Ties   *int
	// RivalryLoss adds a loss to this opponent unless it is already listed.
	RivalryLoss   string
	RivalryLossAt *time.Time
}

// RosterRecord is a fantasy roster team as reported by the league.
type RosterRecord struct {
	Name   string
	Wins   int
	Losses int
	Ties   int
	// Streak holds W/L/T codes, most recent first.
	Streak []string
}

// FindTeam resolves query to a team index. An exact name wins, then a
// single case-insensitive substring match, then the closest fuzzy match.
func (d *Document) FindTeam(query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, fmt.Errorf("%w: empty team name", ErrNotFound)
	}

	var contains []int
	for i := range d.Teams {
		name := strings.ToLower(d.Teams[i].Name)
		if name == q {
			return i, nil
		}
		if strings.Contains(name, q) {
			contains = append(contains, i)
		}
	}
	switch len(contains) {
	case 1:
		return contains[0], nil
	case 0:
	default:
		return -1, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, query, d.teamNames(contains))
	}

	best, bestScore, tied := -1, 0.0, false
	for i := range d.Teams {
		score := similarity(q, strings.ToLower(d.Teams[i].Name))
		if score <= matchThreshold {
			continue
		}
		switch {
		case best == -1 || score > bestScore:
			best, bestScore, tied = i, score, false
		case score == bestScore:
			tied = true
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("%w: team %q", ErrNotFound, query)
	}
	if tied {
		return -1, fmt.Errorf("%w: %q", ErrAmbiguous, query)
	}
	return best, nil
}

// UpdateTeam applies u to the team matching query and returns its name.
func (d *Document) UpdateTeam(query string, u TeamUpdate) (string, error) {
	i, err := d.FindTeam(query)
	if err != nil {
		return "", err
	}
	t := &d.Teams[i]
	if u.Wins != nil {
		t.Record.Wins = *u.Wins
	}
	if u.Losses != nil {
		t.Record.Losses = *u.Losses
	}
	if u.Ties != nil {
		t.Record.Ties = *u.Ties
	}
	if u.RivalryLoss != "" && !containsString(t.RecentRivalryLosses, u.RivalryLoss) {
		t.RecentRivalryLosses = append(t.RecentRivalryLosses, u.RivalryLoss)
		if u.RivalryLossAt != nil || len(t.RecentRivalryLossTimestamps) > 0 {
			// Keep the timestamps aligned with the losses they belong to.
			for len(t.RecentRivalryLossTimestamps) < len(t.RecentRivalryLosses)-1 {
				t.RecentRivalryLossTimestamps = append(t.RecentRivalryLossTimestamps, "")
			}
			stamp := ""
			if u.RivalryLossAt != nil {
				stamp = u.RivalryLossAt.Format(time.RFC3339)
			}
			t.RecentRivalryLossTimestamps = append(t.RecentRivalryLossTimestamps, stamp)
		}
	}
	return t.Name, nil
}

// UpdateDriver sets the championship position and DNF count.
func (d *Document) UpdateDriver(position, dnfs *int) error {
	if d.Driver == nil {
		return fmt.Errorf("%w: no driver", ErrNotFound)
	}
	if position != nil {
		p := *position
		d.Driver.ChampionshipPosition = &p
	}
	if dnfs != nil {
		d.Driver.RecentDNFs = *dnfs
	}
	return nil
}

// UpdateRoster sets the fantasy team's record.
func (d *Document) UpdateRoster(wins, losses *int) error {
	if d.Fantasy == nil {
		return fmt.Errorf("%w: no fantasy team", ErrNotFound)
	}
	if wins != nil {
		d.Fantasy.Record.Wins = *wins
	}
	if losses != nil {
		d.Fantasy.Record.Losses = *losses
	}
	return nil
}

// ApplyRoster replaces the fantasy team's record and streak with league
// data. Dials, notes and credentials are kept.
func (d *Document) ApplyRoster(r RosterRecord) {
	if d.Fantasy == nil {
		d.Fantasy = &FantasyDoc{}
	}
	if r.Name != "" {
		d.Fantasy.Name = r.Name
	}
	d.Fantasy.Record = RecordDoc{Wins: r.Wins, Losses: r.Losses, Ties: r.Ties}
	d.Fantasy.RecentStreak = append([]string(nil), r.Streak...)
	// League results carry no times; stale ones would misalign.
	d.Fantasy.RecentStreakTimes = nil
}

func (d *Document) teamNames(idx []int) string {
	names := make([]string, 0, len(idx))
	for _, i := range idx {
		names = append(names, d.Teams[i].Name)
	}
	return strings.Join(names, ", ")
}

func similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
