package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/okian/moodmeter/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func individualNames(name string) bool {
	return strings.Contains(strings.ToLower(name), "cowboys")
}

func TestMapperSnapshot(t *testing.T) {
	Convey("Given a mapper and a document", t, func() {
		m := NewMapper(individualNames, time.UTC)
		doc := &Document{
			Teams: []TeamDoc{
				{
					Name:                "Dallas Cowboys",
					Sport:               "NFL",
					Record:              RecordDoc{Wins: 3, Losses: 5, Ties: 1},
					RecentRivalryLosses: []string{"Eagles", "Giants"},
					RecentRivalryLossTimestamps: []string{
						"2025-10-12T16:25:00-04:00",
					},
					RecentStreak:          []string{"l", "W", "T"},
					RecentStreakTimes:     []string{"2025-10-12T20:00:00", "garbage"},
					RecentOpponents:       []string{"Eagles"},
					RecentOpponentRecords: []*OpponentRecordDoc{{Wins: 5, Losses: 1}, nil},
					RecentGameLocations:   []string{"Home", "away", "neutral"},
					RecentScoreMargins:    []*int{intPtr(-21)},
					RecentBlowoutLosses:   []bool{true},
				},
				{Name: "", Sport: "NBA"},
				{Name: "Mystery Club", Sport: " "},
				{Name: "Boston Celtics", Sport: "NBA", ExpectedPerformance: intPtr(9)},
			},
			Driver:  &DriverDoc{Name: "Max Verstappen", RecentRaces: []string{"w", "dnf"}, RecentDNFTimes: []string{"2025-10-05", "bad"}},
			Fantasy: &FantasyDoc{RecentStreak: []string{"L", "W"}},
		}

		snap, skipped := m.Snapshot(doc)

		Convey("Then unusable teams are reported and skipped", func() {
			So(len(snap.Teams), ShouldEqual, 2)
			So(len(skipped), ShouldEqual, 2)
			So(skipped[0].Index, ShouldEqual, 1)
			So(skipped[0].Reason, ShouldEqual, "missing name")
			So(skipped[1].Name, ShouldEqual, "Mystery Club")
			So(skipped[1].Reason, ShouldEqual, "missing sport")
		})

		Convey("Then the profile is derived from sport and name", func() {
			So(snap.Teams[0].Profile.Has(model.ProfileIndividualImpact), ShouldBeTrue)
			So(snap.Teams[0].Profile.Has(model.ProfileLowEventCount), ShouldBeTrue)
			So(snap.Teams[1].Profile, ShouldEqual, model.ProfileStandard)
		})

		Convey("Then defaults fill the missing fields", func() {
			celtics := snap.Teams[1]
			So(celtics.ExpectedPerformance, ShouldEqual, 9)
			So(celtics.Expectations, ShouldEqual, DefaultDial)
			So(celtics.InterestLevel, ShouldEqual, 1.0)
			So(celtics.SeasonProgress, ShouldEqual, 0.5)
			So(celtics.FranchiseLegacy, ShouldEqual, DefaultFranchiseLegacy)
			So(len(celtics.Games), ShouldEqual, 0)
		})

		Convey("Then the parallel arrays fold into games", func() {
			games := snap.Teams[0].Games
			So(len(games), ShouldEqual, 3)

			So(games[0].Outcome, ShouldEqual, model.Loss)
			So(games[0].Opponent, ShouldEqual, "Eagles")
			So(games[0].OpponentRecord, ShouldNotBeNil)
			So(games[0].OpponentRecord.Wins, ShouldEqual, 5)
			So(games[0].Location, ShouldEqual, model.LocationHome)
			So(*games[0].Margin, ShouldEqual, -21)
			So(games[0].BlowoutLoss, ShouldBeTrue)
			So(games[0].PlayedAt, ShouldNotBeNil)
			So(games[0].PlayedAt.Equal(time.Date(2025, 10, 12, 20, 0, 0, 0, time.UTC)), ShouldBeTrue)

			So(games[1].Outcome, ShouldEqual, model.Win)
			So(games[1].OpponentRecord, ShouldBeNil)
			So(games[1].Location, ShouldEqual, model.LocationAway)
			So(games[1].PlayedAt, ShouldBeNil)
			So(games[1].Margin, ShouldBeNil)

			So(games[2].Outcome, ShouldEqual, model.Tie)
			So(games[2].Location, ShouldEqual, model.LocationUnknown)
			So(games[2].Opponent, ShouldEqual, "")
		})

		Convey("Then rivalry losses keep their timestamps by position", func() {
			losses := snap.Teams[0].RivalryLosses
			So(len(losses), ShouldEqual, 2)
			So(losses[0].At, ShouldNotBeNil)
			So(losses[0].At.UTC().Hour(), ShouldEqual, 20)
			So(losses[1].At, ShouldBeNil)
		})

		Convey("Then the driver gets driver defaults", func() {
			So(snap.Driver, ShouldNotBeNil)
			So(snap.Driver.ChampionshipPosition, ShouldEqual, DefaultDriverPosition)
			So(snap.Driver.ExpectedPerformance, ShouldEqual, DefaultDriverDial)
			So(snap.Driver.Races[0].Code, ShouldEqual, model.RaceWin)
			So(snap.Driver.Races[1].Code, ShouldEqual, model.RaceDNF)
			So(len(snap.Driver.DNFTimes), ShouldEqual, 2)
			So(snap.Driver.DNFTimes[0], ShouldNotBeNil)
			So(snap.Driver.DNFTimes[1], ShouldBeNil)
		})

		Convey("Then the fantasy team gets a default name", func() {
			So(snap.Roster, ShouldNotBeNil)
			So(snap.Roster.Name, ShouldEqual, DefaultFantasyName)
			So(len(snap.Roster.Games), ShouldEqual, 2)
			So(snap.Roster.Games[0].Outcome, ShouldEqual, model.Loss)
		})
	})

	Convey("Given a nil document", t, func() {
		snap, skipped := NewMapper(nil, nil).Snapshot(nil)

		Convey("Then the snapshot is empty", func() {
			So(snap.Len(), ShouldEqual, 0)
			So(skipped, ShouldBeEmpty)
		})
	})
}
