package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func updateFixture() *Document {
	return &Document{
		Teams: []TeamDoc{
			{Name: "Boston Celtics", Sport: "NBA", Record: RecordDoc{Wins: 40, Losses: 20}},
			{Name: "North Carolina Tar Heels", Sport: "NCAA Basketball"},
			{Name: "Carolina Panthers", Sport: "NFL"},
			{Name: "Dallas Cowboys", Sport: "NFL", RecentRivalryLosses: []string{"Eagles"}},
		},
	}
}

func TestDocumentFindTeam(t *testing.T) {
	convey.Convey("Given a document with several teams", t, func() {
		doc := updateFixture()

		convey.Convey("When the query is a unique substring", func() {
			i, err := doc.FindTeam("celtics")
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.Teams[i].Name, convey.ShouldEqual, "Boston Celtics")
		})

		convey.Convey("When the query is the exact name", func() {
			i, err := doc.FindTeam("carolina panthers")
			convey.So(err, convey.ShouldBeNil)
			convey.So(i, convey.ShouldEqual, 2)
		})

		convey.Convey("When the query matches several names", func() {
			_, err := doc.FindTeam("Carolina")
			convey.So(errors.Is(err, ErrAmbiguous), convey.ShouldBeTrue)
		})

		convey.Convey("When the query is misspelled", func() {
			i, err := doc.FindTeam("Boston Celtix")
			convey.So(err, convey.ShouldBeNil)
			convey.So(i, convey.ShouldEqual, 0)
		})

		convey.Convey("When nothing is close", func() {
			_, err := doc.FindTeam("Manchester United")
			convey.So(errors.Is(err, ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When the query is empty", func() {
			_, err := doc.FindTeam("  ")
			convey.So(errors.Is(err, ErrNotFound), convey.ShouldBeTrue)
		})
	})
}

func TestDocumentUpdates(t *testing.T) {
	convey.Convey("Given a document", t, func() {
		doc := updateFixture()

		convey.Convey("When a team record is updated", func() {
			wins, losses := 41, 21
			name, err := doc.UpdateTeam("celtics", TeamUpdate{Wins: &wins, Losses: &losses})

			convey.So(err, convey.ShouldBeNil)
			convey.So(name, convey.ShouldEqual, "Boston Celtics")
			convey.So(doc.Teams[0].Record.Wins, convey.ShouldEqual, 41)
			convey.So(doc.Teams[0].Record.Losses, convey.ShouldEqual, 21)
			convey.So(doc.Teams[0].Record.Ties, convey.ShouldEqual, 0)
		})

		convey.Convey("When a known rivalry loss is added again", func() {
			_, err := doc.UpdateTeam("cowboys", TeamUpdate{RivalryLoss: "Eagles"})

			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.Teams[3].RecentRivalryLosses, convey.ShouldResemble, []string{"Eagles"})
		})

		convey.Convey("When a timed rivalry loss is added", func() {
			at := time.Date(2025, 10, 12, 20, 0, 0, 0, time.UTC)
			_, err := doc.UpdateTeam("cowboys", TeamUpdate{RivalryLoss: "Giants", RivalryLossAt: &at})

			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.Teams[3].RecentRivalryLosses, convey.ShouldResemble, []string{"Eagles", "Giants"})
			convey.So(doc.Teams[3].RecentRivalryLossTimestamps, convey.ShouldResemble, []string{"", "2025-10-12T20:00:00Z"})
		})

		convey.Convey("When the driver is updated without a driver section", func() {
			pos := 2
			err := doc.UpdateDriver(&pos, nil)
			convey.So(errors.Is(err, ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When the driver is updated", func() {
			doc.Driver = &DriverDoc{Name: "Max Verstappen"}
			pos, dnfs := 4, 2
			convey.So(doc.UpdateDriver(&pos, &dnfs), convey.ShouldBeNil)
			convey.So(*doc.Driver.ChampionshipPosition, convey.ShouldEqual, 4)
			convey.So(doc.Driver.RecentDNFs, convey.ShouldEqual, 2)
		})

		convey.Convey("When the fantasy record is updated without a fantasy section", func() {
			wins := 3
			convey.So(errors.Is(doc.UpdateRoster(&wins, nil), ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When league data is applied", func() {
			exp := 8
			doc.Fantasy = &FantasyDoc{
				Name:                "Old Name",
				ExpectedPerformance: &exp,
				RecentStreakTimes:   []string{"2025-10-01T00:00:00Z"},
				ESPN:                &ESPNDoc{LeagueID: "123", Year: 2025},
			}
			doc.ApplyRoster(RosterRecord{Name: "Gridiron Gurus", Wins: 2, Losses: 5, Streak: []string{"L", "L", "W"}})

			convey.So(doc.Fantasy.Name, convey.ShouldEqual, "Gridiron Gurus")
			convey.So(doc.Fantasy.Record, convey.ShouldResemble, RecordDoc{Wins: 2, Losses: 5})
			convey.So(doc.Fantasy.RecentStreak, convey.ShouldResemble, []string{"L", "L", "W"})
			convey.So(doc.Fantasy.RecentStreakTimes, convey.ShouldBeNil)
			convey.So(*doc.Fantasy.ExpectedPerformance, convey.ShouldEqual, 8)
			convey.So(doc.Fantasy.ESPN.Year, convey.ShouldEqual, 2025)

			wins := 3
			convey.So(doc.UpdateRoster(&wins, nil), convey.ShouldBeNil)
			convey.So(doc.Fantasy.Record.Wins, convey.ShouldEqual, 3)
		})
	})
}
