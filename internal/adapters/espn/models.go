package espn

import (
	"fmt"
	"strings"
)

type leagueResponse struct {
	ID       int       `json:"id"`
	SeasonID int       `json:"seasonId"`
	Status   status    `json:"status"`
	Teams    []team    `json:"teams"`
	Schedule []matchup `json:"schedule"`
}

type status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	IsActive             bool `json:"isActive"`
}

type team struct {
	ID       int    `json:"id"`
	Abbrev   string `json:"abbrev"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Nickname string `json:"nickname"`
	Record   record `json:"record"`
}

// DisplayName prefers the single name field; older seasons split it.
func (t team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return strings.TrimSpace(t.Location + " " + t.Nickname)
}

type record struct {
	Overall recordDetails `json:"overall"`
}

type recordDetails struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Winner values of a decided matchup. Anything else, usually
// "UNDECIDED", is still in progress.
const (
	winnerHome = "HOME"
	winnerAway = "AWAY"
	winnerTie  = "TIE"
)

type matchup struct {
	ID              int       `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	Home            teamScore `json:"home"`
	Away            teamScore `json:"away"`
	Winner          string    `json:"winner"`
}

type teamScore struct {
	TeamID      int     `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}

// FantasyTeam is the roster team's current standing.
type FantasyTeam struct {
	ID          int
	Name        string
	Wins        int
	Losses      int
	Ties        int
	CurrentWeek int
	// Streak holds W/L/T codes, most recent first.
	Streak []string
}

// Record renders W-L, or W-L-T when there are ties.
func (f FantasyTeam) Record() string {
	if f.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", f.Wins, f.Losses, f.Ties)
	}
	return fmt.Sprintf("%d-%d", f.Wins, f.Losses)
}
