// Package types contains the scoring output shapes shared across the application
package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Contribution is one itemized line of an entity's score.
type Contribution struct {
	Label  string  `json:"label"`
	Points float64 `json:"points"`
}

// Breakdown is an ordered list of contributions. Labels are unique and
// zero-valued lines are never stored.
type Breakdown []Contribution

// Add appends a contribution, or adds to an existing line with the same label.
func (b *Breakdown) Add(label string, points float64) {
	if points == 0 {
		return
	}
	for i := range *b {
		if (*b)[i].Label == label {
			(*b)[i].Points += points
			return
		}
	}
	*b = append(*b, Contribution{Label: label, Points: points})
}

// Get returns the points recorded under label.
func (b Breakdown) Get(label string) (float64, bool) {
	for _, c := range b {
		if c.Label == label {
			return c.Points, true
		}
	}
	return 0, false
}

// Total sums every line.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, c := range b {
		sum += c.Points
	}
	return sum
}

// Map returns the breakdown keyed by label.
func (b Breakdown) Map() map[string]float64 {
	m := make(map[string]float64, len(b))
	for _, c := range b {
		m[c.Label] = c.Points
	}
	return m
}

// MarshalJSON renders the breakdown as a JSON object, preserving order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Points)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EntityScore is the result of scoring a single entity.
type EntityScore struct {
	Score          float64   `json:"score"`
	Breakdown      Breakdown `json:"breakdown"`
	WinPct         float64   `json:"win_pct"`
	ExpectedWinPct float64   `json:"expected_win_pct"`
}

// Source kinds.
const (
	KindTeam   = "team"
	KindDriver = "driver"
	KindRoster = "roster"
)

// Source is one entity's entry in the combined breakdown.
type Source struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Score    float64   `json:"score"`
	Details  Breakdown `json:"details"`
	Record   string    `json:"record,omitempty"`
	Position string    `json:"position,omitempty"`
}

// Status returns the record or position string of the source.
func (s Source) Status() string {
	if s.Record != "" {
		return s.Record
	}
	return s.Position
}

// Aggregate is the combined result of one scoring pass.
type Aggregate struct {
	// Total is the raw total floored at zero, for display.
	Total float64 `json:"total_score"`
	// Raw is the unclamped sum; negative means net mood-improving.
	Raw     float64   `json:"raw_score"`
	Sources []Source  `json:"breakdown"`
	At      time.Time `json:"timestamp"`
}

// Source returns the entry for name.
func (a Aggregate) Source(name string) (Source, bool) {
	for _, s := range a.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Level is the human-readable classification of a score.
type Level struct {
	Emoji string `json:"emoji"`
	Label string `json:"level"`
}

// Depression is the API view of one scoring pass.
type Depression struct {
	// Score is the display total rounded to one decimal.
	Score     float64   `json:"score"`
	RawScore  float64   `json:"raw_score"`
	Level     string    `json:"level"`
	Emoji     string    `json:"emoji"`
	Breakdown []Source  `json:"breakdown"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityView is one scored entity with the inputs that explain its score.
type EntityView struct {
	Name                 string    `json:"name"`
	Kind                 string    `json:"kind"`
	Sport                string    `json:"sport"`
	Profile              string    `json:"profile,omitempty"`
	Wins                 int       `json:"wins"`
	Losses               int       `json:"losses"`
	Ties                 int       `json:"ties"`
	Record               string    `json:"record"`
	WinPercentage        float64   `json:"win_percentage"`
	RecentStreak         []string  `json:"recent_streak"`
	Points               float64   `json:"depression_points"`
	Breakdown            Breakdown `json:"breakdown"`
	ExpectedPerformance  int       `json:"expected_performance"`
	Expectations         int       `json:"jasons_expectations"`
	Rivals               []string  `json:"rivals,omitempty"`
	RecentRivalryLosses  []string  `json:"recent_rivalry_losses,omitempty"`
	InterestLevel        float64   `json:"interest_level,omitempty"`
	ChampionshipPosition int       `json:"championship_position,omitempty"`
	RecentDNFs           int       `json:"recent_dnfs,omitempty"`
	Notes                string    `json:"notes,omitempty"`
}

// RosterRefresh reports the fantasy data pulled from the league.
type RosterRefresh struct {
	Name   string   `json:"name"`
	Record string   `json:"record"`
	Week   int      `json:"week"`
	Streak []string `json:"recent_streak"`
}
