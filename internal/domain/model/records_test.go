package model_test

import (
	"testing"
	"time"

	model "github.com/okian/moodmeter/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestSport(t *testing.T) {
	convey.Convey("Given the known sports", t, func() {
		convey.Convey("When checking offseason months", func() {
			convey.So(model.SportMLB.InOffseason(time.December), convey.ShouldBeTrue)
			convey.So(model.SportMLB.InOffseason(time.June), convey.ShouldBeFalse)
			convey.So(model.SportNFL.InOffseason(time.May), convey.ShouldBeTrue)
			convey.So(model.SportNFL.InOffseason(time.October), convey.ShouldBeFalse)
			convey.So(model.SportNBA.InOffseason(time.August), convey.ShouldBeTrue)
			convey.So(model.SportNCAABasketball.InOffseason(time.October), convey.ShouldBeTrue)
			convey.So(model.SportNCAAFootball.InOffseason(time.September), convey.ShouldBeFalse)
		})

		convey.Convey("When the sport has no known calendar", func() {
			convey.So(model.Sport("Cricket").OffseasonMonths(), convey.ShouldBeEmpty)
			convey.So(model.SportF1.InOffseason(time.January), convey.ShouldBeFalse)
		})

		convey.Convey("When checking event counts", func() {
			convey.So(model.SportNFL.LowEventCount(), convey.ShouldBeTrue)
			convey.So(model.SportF1.LowEventCount(), convey.ShouldBeTrue)
			convey.So(model.SportNBA.LowEventCount(), convey.ShouldBeFalse)
		})
	})
}

func TestProfile(t *testing.T) {
	convey.Convey("Given profiles derived from sport and allow-list", t, func() {
		convey.Convey("Then an NBA team off the list is standard", func() {
			p := model.ProfileFor(model.SportNBA, false)
			convey.So(p, convey.ShouldEqual, model.ProfileStandard)
			convey.So(p.String(), convey.ShouldEqual, "standard")
		})

		convey.Convey("Then an NFL team on the list carries both flags", func() {
			p := model.ProfileFor(model.SportNFL, true)
			convey.So(p.Has(model.ProfileIndividualImpact), convey.ShouldBeTrue)
			convey.So(p.Has(model.ProfileLowEventCount), convey.ShouldBeTrue)
			convey.So(p.String(), convey.ShouldEqual, "individual-impact+low-event-count")
		})

		convey.Convey("Then F1 is always individual-impact", func() {
			p := model.ProfileFor(model.SportF1, false)
			convey.So(p.Has(model.ProfileIndividualImpact), convey.ShouldBeTrue)
		})

		convey.Convey("Then the standard flag never matches", func() {
			convey.So(model.ProfileIndividualImpact.Has(model.ProfileStandard), convey.ShouldBeFalse)
		})
	})
}

func TestRecords(t *testing.T) {
	convey.Convey("Given team and roster records", t, func() {
		team := model.Team{Name: "Mavericks", Wins: 10, Losses: 5, Rivals: []string{"Spurs"}}

		convey.Convey("Then the record string omits zero ties", func() {
			convey.So(team.RecordString(), convey.ShouldEqual, "10-5")
			team.Ties = 1
			convey.So(team.RecordString(), convey.ShouldEqual, "10-5-1")
		})

		convey.Convey("Then rivals are matched exactly", func() {
			convey.So(team.IsRival("Spurs"), convey.ShouldBeTrue)
			convey.So(team.IsRival("Rockets"), convey.ShouldBeFalse)
			convey.So(team.IsRival(""), convey.ShouldBeFalse)
		})

		convey.Convey("Then win percentage needs games", func() {
			_, ok := model.Record{}.WinPct()
			convey.So(ok, convey.ShouldBeFalse)
			pct, ok := model.Record{Wins: 3, Losses: 1}.WinPct()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(pct, convey.ShouldEqual, 0.75)
		})

		convey.Convey("Then a snapshot counts every entity", func() {
			s := model.Snapshot{Teams: []model.Team{team}, Driver: &model.Driver{}, Roster: &model.Roster{}}
			convey.So(s.Len(), convey.ShouldEqual, 3)
			convey.So(model.Snapshot{}.Len(), convey.ShouldEqual, 0)
		})

		convey.Convey("Then podium results are recognised", func() {
			convey.So(model.Race{Code: "P2"}.Podium(), convey.ShouldBeTrue)
			convey.So(model.Race{Code: "P7"}.Podium(), convey.ShouldBeFalse)
			convey.So(model.Race{Code: "DNF"}.Podium(), convey.ShouldBeFalse)
		})
	})
}
