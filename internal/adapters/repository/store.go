// Package repository persists the snapshot document the mood meter scores
// and maps it into the records the scoring engine consumes.
package repository

import (
	"context"
	"encoding/json"
	"reflect"
)

// Store provides read/write access to the snapshot document.
type Store interface {
	// Load reads the document. A missing document is returned empty.
	Load(ctx context.Context) (*Document, error)
	// Save replaces the persisted document.
	Save(ctx context.Context, doc *Document) error
}

// Document is the persisted snapshot: every tracked team, plus the optional
// fantasy roster team and championship driver.
type Document struct {
	Teams   []TeamDoc   `json:"teams"`
	Fantasy *FantasyDoc `json:"fantasy_team,omitempty"`
	Driver  *DriverDoc  `json:"f1_driver,omitempty"`
}

// RecordDoc is a season tally.
type RecordDoc struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties,omitempty"`
}

// OpponentRecordDoc is an opponent's record at the time of a game.
type OpponentRecordDoc struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// TeamDoc is one team entry. Per-game context is stored as parallel
// arrays aligned with RecentStreak, most recent first.
type TeamDoc struct {
	Name                string    `json:"name"`
	Sport               string    `json:"sport"`
	Record              RecordDoc `json:"record"`
	ExpectedPerformance *int      `json:"expected_performance,omitempty"`
	Expectations        *int      `json:"jasons_expectations,omitempty"`
	InterestLevel       *float64  `json:"interest_level,omitempty"`

	Rivals                      []string `json:"rivals,omitempty"`
	RecentRivalryLosses         []string `json:"recent_rivalry_losses,omitempty"`
	RecentRivalryLossTimestamps []string `json:"recent_rivalry_loss_timestamps,omitempty"`

	RecentStreak          []string             `json:"recent_streak,omitempty"`
	RecentStreakTimes     []string             `json:"recent_streak_timestamps,omitempty"`
	RecentOpponents       []string             `json:"recent_opponents,omitempty"`
	RecentOpponentRecords []*OpponentRecordDoc `json:"recent_opponent_records,omitempty"`
	RecentGameLocations   []string             `json:"recent_game_locations,omitempty"`
	RecentScoreMargins    []*int               `json:"recent_score_margins,omitempty"`
	RecentOvertimeGames   []bool               `json:"recent_overtime_games,omitempty"`
	RecentComebackWins    []bool               `json:"recent_comeback_wins,omitempty"`
	RecentComebackLosses  []bool               `json:"recent_comeback_losses,omitempty"`
	RecentBlowoutLosses   []bool               `json:"recent_blowout_losses,omitempty"`
	RecentBlowoutWins     []bool               `json:"recent_blowout_wins,omitempty"`

	PlayoffPosition    *int     `json:"playoff_position,omitempty"`
	DivisionStanding   *int     `json:"division_standing,omitempty"`
	ConferenceStanding *int     `json:"conference_standing,omitempty"`
	GamesBack          *float64 `json:"games_back,omitempty"`
	PlayoffEliminated  bool     `json:"playoff_eliminated,omitempty"`
	PlayoffClinched    bool     `json:"playoff_clinched,omitempty"`
	DivisionLeader     bool     `json:"division_leader,omitempty"`
	ConferenceLeader   bool     `json:"conference_leader,omitempty"`
	SeasonProgress     *float64 `json:"season_progress,omitempty"`

	RecentPlayoffPerformance int  `json:"recent_playoff_performance,omitempty"`
	ChampionshipDroughtYears int  `json:"championship_drought_years,omitempty"`
	FranchiseLegacy          *int `json:"franchise_legacy,omitempty"`

	LongestWinStreak  int `json:"longest_win_streak,omitempty"`
	LongestLoseStreak int `json:"longest_lose_streak,omitempty"`
	CurrentWinStreak  int `json:"current_win_streak,omitempty"`
	CurrentLoseStreak int `json:"current_lose_streak,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// ESPNDoc holds league credentials kept alongside the fantasy team.
type ESPNDoc struct {
	LeagueID json.Number `json:"league_id,omitempty"`
	Year     int         `json:"year,omitempty"`
	TeamID   int         `json:"team_id,omitempty"`
	TeamName string      `json:"team_name,omitempty"`
	S2       string      `json:"espn_s2,omitempty"`
	SWID     string      `json:"swid,omitempty"`
}

// FantasyDoc is the fantasy roster team.
type FantasyDoc struct {
	Name                string    `json:"name"`
	Record              RecordDoc `json:"record"`
	ExpectedPerformance *int      `json:"expected_performance,omitempty"`
	Expectations        *int      `json:"jasons_expectations,omitempty"`
	RecentStreak        []string  `json:"recent_streak,omitempty"`
	RecentStreakTimes   []string  `json:"recent_streak_timestamps,omitempty"`
	ESPN                *ESPNDoc  `json:"espn,omitempty"`
	Notes               string    `json:"notes,omitempty"`
}

// DriverDoc is the championship driver.
type DriverDoc struct {
	Name                 string   `json:"name"`
	ChampionshipPosition *int     `json:"championship_position,omitempty"`
	ExpectedPerformance  *int     `json:"expected_performance,omitempty"`
	Expectations         *int     `json:"jasons_expectations,omitempty"`
	RecentRaces          []string `json:"recent_races,omitempty"`
	RecentRaceTimes      []string `json:"recent_race_timestamps,omitempty"`
	RecentDNFs           int      `json:"recent_dnfs,omitempty"`
	RecentDNFTimes       []string `json:"recent_dnf_timestamps,omitempty"`
	Rivals               []string `json:"rivals,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

// normalize drops sections that decoded from an empty object.
func (d *Document) normalize() {
	if d.Teams == nil {
		d.Teams = []TeamDoc{}
	}
	if d.Fantasy != nil && reflect.DeepEqual(*d.Fantasy, FantasyDoc{}) {
		d.Fantasy = nil
	}
	if d.Driver != nil && reflect.DeepEqual(*d.Driver, DriverDoc{}) {
		d.Driver = nil
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	raw, err := json.Marshal(d)
	if err != nil {
		return &Document{Teams: []TeamDoc{}}
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return &Document{Teams: []TeamDoc{}}
	}
	out.normalize()
	return &out
}
