package repository

import (
	"strings"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
)

// Defaults applied to fields the document leaves out.
const (
	DefaultDial            = 5
	DefaultDriverDial      = 10
	DefaultDriverPosition  = 1
	DefaultSeasonProgress  = 0.5
	DefaultFranchiseLegacy = 5
	DefaultInterestLevel   = 1.0
	DefaultFantasyName     = "Fantasy Team"
)

// Naive timestamps (no zone) are read in the mapper's location.
var timeLayouts = []string{ //nolint:gochecknoglobals // fixed lookup table
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Skipped describes a team entry the mapper could not use.
type Skipped struct {
	Index  int
	Name   string
	Reason string
}

// Mapper turns a Document into a scoring snapshot.
type Mapper struct {
	individual func(name string) bool
	loc        *time.Location
}

// NewMapper creates a mapper. individual reports whether a name belongs on
// the individual-impact list; nil means none do. A nil loc means UTC.
func NewMapper(individual func(name string) bool, loc *time.Location) *Mapper {
	if individual == nil {
		individual = func(string) bool { return false }
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Mapper{individual: individual, loc: loc}
}

// Snapshot builds the records for one scoring pass. Teams without a name
// or sport are reported in the skipped list.
func (m *Mapper) Snapshot(doc *Document) (model.Snapshot, []Skipped) {
	var (
		snap    model.Snapshot
		skipped []Skipped
	)
	if doc == nil {
		return snap, nil
	}

	snap.Teams = make([]model.Team, 0, len(doc.Teams))
	for i := range doc.Teams {
		td := &doc.Teams[i]
		switch {
		case strings.TrimSpace(td.Name) == "":
			skipped = append(skipped, Skipped{Index: i, Reason: "missing name"})
			continue
		case strings.TrimSpace(td.Sport) == "":
			skipped = append(skipped, Skipped{Index: i, Name: td.Name, Reason: "missing sport"})
			continue
		}
		snap.Teams = append(snap.Teams, m.team(td))
	}

	if doc.Driver != nil {
		snap.Driver = m.driver(doc.Driver)
	}
	if doc.Fantasy != nil {
		snap.Roster = m.roster(doc.Fantasy)
	}
	return snap, skipped
}

func (m *Mapper) team(td *TeamDoc) model.Team {
	sport := model.Sport(td.Sport)
	t := model.Team{
		Name:                td.Name,
		Sport:               sport,
		Profile:             model.ProfileFor(sport, m.individual(td.Name)),
		Wins:                td.Record.Wins,
		Losses:              td.Record.Losses,
		Ties:                td.Record.Ties,
		ExpectedPerformance: intOr(td.ExpectedPerformance, DefaultDial),
		Expectations:        intOr(td.Expectations, DefaultDial),
		InterestLevel:       floatOr(td.InterestLevel, DefaultInterestLevel),
		Rivals:              append([]string(nil), td.Rivals...),
		PlayoffPosition:     copyInt(td.PlayoffPosition),
		DivisionStanding:    copyInt(td.DivisionStanding),
		ConferenceStanding:  copyInt(td.ConferenceStanding),
		PlayoffEliminated:   td.PlayoffEliminated,
		PlayoffClinched:     td.PlayoffClinched,
		DivisionLeader:      td.DivisionLeader,
		ConferenceLeader:    td.ConferenceLeader,
		SeasonProgress:      floatOr(td.SeasonProgress, DefaultSeasonProgress),
		ChampionshipDrought: td.ChampionshipDroughtYears,
		PlayoffPerformance:  td.RecentPlayoffPerformance,
		FranchiseLegacy:     intOr(td.FranchiseLegacy, DefaultFranchiseLegacy),
		CurrentWinStreak:    td.CurrentWinStreak,
		CurrentLoseStreak:   td.CurrentLoseStreak,
		LongestWinStreak:    td.LongestWinStreak,
		LongestLoseStreak:   td.LongestLoseStreak,
		Notes:               td.Notes,
	}
	if td.GamesBack != nil {
		gb := *td.GamesBack
		t.GamesBack = &gb
	}

	for i, opp := range td.RecentRivalryLosses {
		t.RivalryLosses = append(t.RivalryLosses, model.RivalryLoss{
			Opponent: opp,
			At:       m.timeAt(td.RecentRivalryLossTimestamps, i),
		})
	}

	t.Games = make([]model.Game, 0, len(td.RecentStreak))
	for i, code := range td.RecentStreak {
		g := model.Game{
			Outcome:      parseOutcome(code),
			Opponent:     at(td.RecentOpponents, i),
			Location:     parseLocation(at(td.RecentGameLocations, i)),
			Overtime:     at(td.RecentOvertimeGames, i),
			ComebackWin:  at(td.RecentComebackWins, i),
			ComebackLoss: at(td.RecentComebackLosses, i),
			BlowoutWin:   at(td.RecentBlowoutWins, i),
			BlowoutLoss:  at(td.RecentBlowoutLosses, i),
			PlayedAt:     m.timeAt(td.RecentStreakTimes, i),
		}
		if rec := at(td.RecentOpponentRecords, i); rec != nil {
			g.OpponentRecord = &model.Record{Wins: rec.Wins, Losses: rec.Losses}
		}
		g.Margin = copyInt(at(td.RecentScoreMargins, i))
		t.Games = append(t.Games, g)
	}
	return t
}

func (m *Mapper) driver(dd *DriverDoc) *model.Driver {
	d := &model.Driver{
		Name:                 dd.Name,
		ChampionshipPosition: intOr(dd.ChampionshipPosition, DefaultDriverPosition),
		ExpectedPerformance:  intOr(dd.ExpectedPerformance, DefaultDriverDial),
		Expectations:         intOr(dd.Expectations, DefaultDriverDial),
		DNFs:                 dd.RecentDNFs,
		Rivals:               append([]string(nil), dd.Rivals...),
		Notes:                dd.Notes,
	}
	for i, code := range dd.RecentRaces {
		d.Races = append(d.Races, model.Race{
			Code: strings.ToUpper(strings.TrimSpace(code)),
			At:   m.timeAt(dd.RecentRaceTimes, i),
		})
	}
	for _, raw := range dd.RecentDNFTimes {
		d.DNFTimes = append(d.DNFTimes, m.parseTime(raw))
	}
	return d
}

func (m *Mapper) roster(fd *FantasyDoc) *model.Roster {
	name := fd.Name
	if name == "" {
		name = DefaultFantasyName
	}
	r := &model.Roster{
		Name:                name,
		Wins:                fd.Record.Wins,
		Losses:              fd.Record.Losses,
		Ties:                fd.Record.Ties,
		ExpectedPerformance: intOr(fd.ExpectedPerformance, DefaultDial),
		Expectations:        intOr(fd.Expectations, DefaultDial),
		Notes:               fd.Notes,
	}
	for i, code := range fd.RecentStreak {
		r.Games = append(r.Games, model.Game{
			Outcome:  parseOutcome(code),
			PlayedAt: m.timeAt(fd.RecentStreakTimes, i),
		})
	}
	return r
}

// timeAt parses the i-th timestamp; missing or unparseable values are nil.
func (m *Mapper) timeAt(values []string, i int) *time.Time {
	return m.parseTime(at(values, i))
}

func (m *Mapper) parseTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, m.loc); err == nil {
			return &ts
		}
	}
	return nil
}

func parseOutcome(code string) model.Outcome {
	return model.Outcome(strings.ToUpper(strings.TrimSpace(code)))
}

func parseLocation(v string) model.Location {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "home":
		return model.LocationHome
	case "away":
		return model.LocationAway
	default:
		return model.LocationUnknown
	}
}

// at returns values[i], or the zero value when the array is short.
func at[T any](values []T, i int) T {
	var zero T
	if i < 0 || i >= len(values) {
		return zero
	}
	return values[i]
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
