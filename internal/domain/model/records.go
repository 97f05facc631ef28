// Package model contains the entity records the scoring engine consumes.
//
// Records are built once per scoring pass by the loader and are treated as
// read-only while they are scored.
package model

import (
	"fmt"
	"time"
)

// Outcome is a single game result from the entity's point of view.
type Outcome string

// Game outcomes.
const (
	Win  Outcome = "W"
	Loss Outcome = "L"
	Tie  Outcome = "T"
)

// Location is where a game was played relative to the entity.
type Location string

// Game locations. LocationUnknown means no data.
const (
	LocationUnknown Location = ""
	LocationHome    Location = "home"
	LocationAway    Location = "away"
)

// Record is a win/loss tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// WinPct returns the winning fraction and whether any games were played.
func (r Record) WinPct() (float64, bool) {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0, false
	}
	return float64(r.Wins) / float64(total), true
}

// Game is one recent game with whatever context is known about it.
// Nil pointers and zero values mean "no data".
type Game struct {
	Outcome        Outcome
	Opponent       string
	OpponentRecord *Record
	Location       Location
	Margin         *int
	Overtime       bool
	ComebackWin    bool
	ComebackLoss   bool
	BlowoutWin     bool
	BlowoutLoss    bool
	PlayedAt       *time.Time
}

// RivalryLoss is a loss to a rival tracked outside the recent streak.
type RivalryLoss struct {
	Opponent string
	At       *time.Time
}

// Team is a competitive team across a season.
type Team struct {
	Name    string
	Sport   Sport
	Profile Profile

	Wins   int
	Losses int
	Ties   int

	// ExpectedPerformance and Expectations are 1-10 dials.
	ExpectedPerformance int
	Expectations        int
	// InterestLevel scales every contribution of the team; 1.0 is neutral.
	InterestLevel float64

	Rivals        []string
	RivalryLosses []RivalryLoss
	// Games is most recent first.
	Games []Game

	PlayoffPosition     *int
	DivisionStanding    *int
	ConferenceStanding  *int
	GamesBack           *float64
	PlayoffEliminated   bool
	PlayoffClinched     bool
	DivisionLeader      bool
	ConferenceLeader    bool
	SeasonProgress      float64
	ChampionshipDrought int
	PlayoffPerformance  int
	FranchiseLegacy     int

	CurrentWinStreak  int
	CurrentLoseStreak int
	LongestWinStreak  int
	LongestLoseStreak int

	Notes string
}

// IsRival reports whether opponent is one of the team's rivals.
func (t *Team) IsRival(opponent string) bool {
	if opponent == "" {
		return false
	}
	for _, r := range t.Rivals {
		if r == opponent {
			return true
		}
	}
	return false
}

// RecordString renders W-L, or W-L-T when the team has ties.
func (t *Team) RecordString() string {
	if t.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
	}
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// Outcomes returns the recent streak as outcome codes, most recent first.
func (t *Team) Outcomes() []Outcome {
	out := make([]Outcome, len(t.Games))
	for i, g := range t.Games {
		out[i] = g.Outcome
	}
	return out
}

// Race result codes. Any other code is a non-podium finish.
const (
	RaceWin    = "W"
	RaceSecond = "P2"
	RaceThird  = "P3"
	RaceDNF    = "DNF"
)

// Race is one recent race result, most recent first in Driver.Races.
type Race struct {
	Code string
	At   *time.Time
}

// Podium reports whether the result was a win, 2nd or 3rd place.
func (r Race) Podium() bool {
	return r.Code == RaceWin || r.Code == RaceSecond || r.Code == RaceThird
}

// Driver is an individual competitor in a championship.
type Driver struct {
	Name                 string
	ChampionshipPosition int
	ExpectedPerformance  int
	Expectations         int
	Races                []Race
	DNFs                 int
	// DNFTimes holds the retirement times, most recent first. A nil entry
	// is a retirement whose time could not be read.
	DNFTimes []*time.Time
	Rivals   []string
	Notes    string
}

// PositionString renders the championship position, e.g. "P1".
func (d *Driver) PositionString() string {
	return fmt.Sprintf("P%d", d.ChampionshipPosition)
}

// Roster is a fantasy-league roster team.
type Roster struct {
	Name                string
	Wins                int
	Losses              int
	Ties                int
	ExpectedPerformance int
	Expectations        int
	// Games carries outcomes (and timestamps when known), most recent first.
	Games []Game
	Notes string
}

// RecordString renders the roster record as W-L.
func (r *Roster) RecordString() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Snapshot is the full set of entities scored together in one pass.
type Snapshot struct {
	Teams  []Team
	Driver *Driver
	Roster *Roster
}

// Len returns the number of entities in the snapshot.
func (s Snapshot) Len() int {
	n := len(s.Teams)
	if s.Driver != nil {
		n++
	}
	if s.Roster != nil {
		n++
	}
	return n
}
