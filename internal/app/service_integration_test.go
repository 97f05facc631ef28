package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/moodmeter/internal/adapters/espn"
	"github.com/okian/moodmeter/internal/adapters/repository"
	service "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

const integrationDoc = `{
  "teams": [
    {
      "name": "Dallas Cowboys",
      "sport": "NFL",
      "record": {"wins": 2, "losses": 4, "ties": 1},
      "expected_performance": 8,
      "jasons_expectations": 9,
      "rivals": ["Eagles", "Giants"],
      "recent_rivalry_losses": ["Eagles"],
      "recent_rivalry_loss_timestamps": ["2025-10-12T20:00:00Z"],
      "recent_streak": ["L", "L", "W"],
      "recent_streak_timestamps": ["2025-10-12T20:00:00Z", "2025-10-05T20:00:00Z", "2025-09-28T20:00:00Z"],
      "recent_opponents": ["Eagles", "Jets", "Bears"],
      "recent_game_locations": ["away", "home", "home"],
      "recent_score_margins": [-10, -3, 7]
    }
  ],
  "fantasy_team": {
    "name": "Gridiron Gurus",
    "record": {"wins": 3, "losses": 3},
    "recent_streak": ["W"],
    "espn": {"league_id": 123456, "year": 2025, "team_id": 1}
  }
}`

const integrationLeague = `{
  "status": {"currentMatchupPeriod": 7},
  "teams": [
    {"id": 1, "name": "Gridiron Gurus", "record": {"overall": {"wins": 3, "losses": 4, "ties": 0}}},
    {"id": 2, "name": "Touchdown Titans", "record": {"overall": {"wins": 4, "losses": 3, "ties": 0}}}
  ],
  "schedule": [
    {"matchupPeriodId": 5, "home": {"teamId": 1}, "away": {"teamId": 2}, "winner": "HOME"},
    {"matchupPeriodId": 6, "home": {"teamId": 2}, "away": {"teamId": 1}, "winner": "HOME"}
  ]
}`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service over a document file and a league server", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dir := t.TempDir()
		path := filepath.Join(dir, "teams_config.json")
		So(os.WriteFile(path, []byte(integrationDoc), 0o600), ShouldBeNil)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(integrationLeague))
		}))
		defer srv.Close()

		cfg := config.New()
		store := repository.NewFileStore(path)
		clock := clockwork.NewFakeClockAt(time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC))
		svc := service.New(
			service.WithStore(store),
			service.WithMapper(repository.NewMapper(cfg.IsIndividualImpact, time.UTC)),
			service.WithScorer(scoring.NewEngine(scoring.WithDecayRate(cfg.DecayRate))),
			service.WithClock(clock),
			service.WithESPN(config.ESPN{}, nil, espn.WithBaseURL(srv.URL)),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the document is scored", func() {
			views, err := svc.Teams(ctx)

			Convey("Then the configured team is individual-impact and low-event-count", func() {
				So(err, ShouldBeNil)
				So(len(views), ShouldEqual, 2)
				So(views[0].Profile, ShouldEqual, "individual-impact+low-event-count")
				So(views[0].Record, ShouldEqual, "2-4-1")
				So(views[0].Points, ShouldBeGreaterThan, 0)
				_, ok := views[0].Breakdown.Get(scoring.LabelRivalryLosses)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the fantasy team is refreshed", func() {
			res, err := svc.Refresh(ctx)
			So(err, ShouldBeNil)
			So(res.Record, ShouldEqual, "3-4")
			So(res.Streak, ShouldResemble, []string{"L", "W"})

			Convey("Then the file holds the league data", func() {
				doc, err := store.Load(ctx)
				So(err, ShouldBeNil)
				So(doc.Fantasy.Record.Losses, ShouldEqual, 4)
				So(doc.Fantasy.RecentStreak, ShouldResemble, []string{"L", "W"})
				So(doc.Fantasy.ESPN.LeagueID.String(), ShouldEqual, "123456")
			})

			Convey("Then the report shows the new record", func() {
				report, err := svc.Report(ctx)
				So(err, ShouldBeNil)
				So(report, ShouldContainSubstring, "Gridiron Gurus")
				So(report, ShouldContainSubstring, "Record: 3-4")
			})
		})

		Convey("When the file is edited and reloaded", func() {
			edited := strings.Replace(integrationDoc, `"wins": 2, "losses": 4`, `"wins": 6, "losses": 0`, 1)
			So(os.WriteFile(path, []byte(edited), 0o600), ShouldBeNil)
			So(svc.Reload(ctx), ShouldBeNil)

			views, err := svc.Teams(ctx)
			So(err, ShouldBeNil)
			So(views[0].Record, ShouldEqual, "6-0-1")
		})
	})
}
