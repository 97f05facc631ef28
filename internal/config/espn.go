package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ESPN holds fantasy league credentials read from ESPN_* variables.
// Every field is optional here; the snapshot document may supply the rest.
type ESPN struct {
	LeagueID string `envconfig:"LEAGUE_ID"`
	Year     int    `envconfig:"YEAR"`
	TeamID   int    `envconfig:"TEAM_ID"`
	TeamName string `envconfig:"TEAM_NAME"`
	SWID     string `envconfig:"SWID"`
	S2       string `envconfig:"S2"`
}

// LoadESPN reads ESPN credentials from the environment.
func LoadESPN() (ESPN, error) {
	var e ESPN
	if err := envconfig.Process("ESPN", &e); err != nil {
		return ESPN{}, fmt.Errorf("%w: espn: %w", ErrLoadConfig, err)
	}
	return e, nil
}

// Merge fills the empty fields of e from fallback.
func (e ESPN) Merge(fallback ESPN) ESPN {
	if e.LeagueID == "" {
		e.LeagueID = fallback.LeagueID
	}
	if e.Year == 0 {
		e.Year = fallback.Year
	}
	if e.TeamID == 0 {
		e.TeamID = fallback.TeamID
	}
	if e.TeamName == "" {
		e.TeamName = fallback.TeamName
	}
	if e.SWID == "" {
		e.SWID = fallback.SWID
	}
	if e.S2 == "" {
		e.S2 = fallback.S2
	}
	return e
}

// Configured reports whether a league can be queried. Private leagues also
// need the SWID and espn_s2 cookies, which only fail at request time.
func (e ESPN) Configured() bool {
	return e.LeagueID != "" && e.Year > 0
}
