package espn

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// recentMatchups is how many decided matchups make up the streak.
	recentMatchups = 5
	nameThreshold  = 0.6
)

// API exposes the league queries the mood meter needs.
type API struct {
	client *Client
}

// NewAPI wraps client.
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// MyTeam fetches the configured roster team with its record and recent
// decided matchups. The team is picked by id, then by name, else the
// league's first team.
func (a *API) MyTeam(ctx context.Context) (FantasyTeam, error) {
	cfg := a.client.Config
	if !cfg.Configured() {
		return FantasyTeam{}, ErrNotConfigured
	}

	var resp leagueResponse
	endpoint := fmt.Sprintf("/seasons/%d/segments/0/leagues/%s", cfg.Year, cfg.LeagueID)
	params := map[string]string{
		"view": "mTeam,mMatchupScore",
	}
	if err := a.client.Get(ctx, endpoint, params, nil, &resp); err != nil {
		return FantasyTeam{}, fmt.Errorf("fetching league: %w", err)
	}

	t, err := selectTeam(resp.Teams, cfg.TeamID, cfg.TeamName)
	if err != nil {
		return FantasyTeam{}, err
	}

	return FantasyTeam{
		ID:          t.ID,
		Name:        t.DisplayName(),
		Wins:        t.Record.Overall.Wins,
		Losses:      t.Record.Overall.Losses,
		Ties:        t.Record.Overall.Ties,
		CurrentWeek: resp.Status.CurrentMatchupPeriod,
		Streak:      recentStreak(resp.Schedule, t.ID, recentMatchups),
	}, nil
}

func selectTeam(teams []team, id int, name string) (team, error) {
	if len(teams) == 0 {
		return team{}, fmt.Errorf("%w: league has no teams", ErrTeamNotFound)
	}
	if id > 0 {
		for _, t := range teams {
			if t.ID == id {
				return t, nil
			}
		}
		return team{}, fmt.Errorf("%w: id %d", ErrTeamNotFound, id)
	}
	if name == "" {
		return teams[0], nil
	}

	want := strings.ToLower(name)
	for _, t := range teams {
		have := strings.ToLower(t.DisplayName())
		if have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
			return t, nil
		}
	}

	var bestMatch *team
	bestScore := 0.0
	for i, t := range teams {
		current := strings.ToLower(t.DisplayName())
		distance := fuzzy.LevenshteinDistance(want, current)
		maxLen := float64(max(len(want), len(current)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > nameThreshold && (bestMatch == nil || similarity > bestScore) {
			bestScore = similarity
			bestMatch = &teams[i]
		}
	}
	if bestMatch == nil {
		return team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return *bestMatch, nil
}

// recentStreak returns up to n decided results for teamID, most recent first.
func recentStreak(schedule []matchup, teamID, n int) []string {
	played := make([]matchup, 0, len(schedule))
	for _, m := range schedule {
		if m.Home.TeamID != teamID && m.Away.TeamID != teamID {
			continue
		}
		switch m.Winner {
		case winnerHome, winnerAway, winnerTie:
		default:
			continue
		}
		played = append(played, m)
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].MatchupPeriodID > played[j].MatchupPeriodID
	})

	streak := make([]string, 0, n)
	for _, m := range played {
		if len(streak) == n {
			break
		}
		home := m.Home.TeamID == teamID
		switch {
		case m.Winner == winnerTie:
			streak = append(streak, "T")
		case (m.Winner == winnerHome) == home:
			streak = append(streak, "W")
		default:
			streak = append(streak, "L")
		}
	}
	return streak
}
