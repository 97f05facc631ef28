package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/moodmeter/internal/adapters/espn"
	"github.com/okian/moodmeter/internal/adapters/repository"
	service "github.com/okian/moodmeter/internal/app"
	"github.com/okian/moodmeter/internal/cli"
	"github.com/okian/moodmeter/internal/config"
	"github.com/okian/moodmeter/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		panic(err)
	}
}

const cliDoc = `{
  "teams": [
    {
      "name": "Boston Celtics",
      "sport": "NBA",
      "record": {"wins": 30, "losses": 30},
      "expected_performance": 9,
      "jasons_expectations": 9,
      "rivals": ["Knicks", "Lakers"],
      "recent_streak": ["L", "L", "L"]
    },
    {
      "name": "Boston Red Sox",
      "sport": "MLB",
      "record": {"wins": 20, "losses": 25}
    }
  ],
  "f1_driver": {"name": "Max Verstappen", "championship_position": 2},
  "fantasy_team": {
    "name": "Gridiron Gurus",
    "record": {"wins": 1, "losses": 4},
    "espn": {"league_id": 123456, "year": 2025, "team_id": 3}
  }
}`

type fakeRoster struct {
	team espn.FantasyTeam
	err  error
}

func (f *fakeRoster) MyTeam(context.Context) (espn.FantasyTeam, error) {
	return f.team, f.err
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams_config.json")
	if err := os.WriteFile(path, []byte(cliDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadDoc(path string) *repository.Document {
	doc, err := repository.NewFileStore(path).Load(context.Background())
	So(err, ShouldBeNil)
	return doc
}

func TestParse(t *testing.T) {
	Convey("Given moodctl arguments", t, func() {
		var errOut bytes.Buffer

		Convey("When team fields are given", func() {
			o, err := cli.Parse([]string{"-update-team", "celtics", "-wins", "40", "-ties", "0", "-rivalry-loss", "Knicks"}, &errOut)

			Convey("Then only the given counts are set", func() {
				So(err, ShouldBeNil)
				So(o.UpdateTeam, ShouldEqual, "celtics")
				So(*o.Wins, ShouldEqual, 40)
				So(o.Losses, ShouldBeNil)
				So(*o.Ties, ShouldEqual, 0)
				So(o.RivalryLoss, ShouldEqual, "Knicks")
				So(o.HasTeamUpdate(), ShouldBeTrue)
				So(o.HasDriverUpdate(), ShouldBeFalse)
			})
		})

		Convey("When driver and fantasy fields are given", func() {
			o, err := cli.Parse([]string{"-f1-position", "3", "-f1-dnf", "1", "-fantasy-losses", "5", "-json"}, &errOut)

			So(err, ShouldBeNil)
			So(*o.F1Position, ShouldEqual, 3)
			So(*o.F1DNFs, ShouldEqual, 1)
			So(o.FantasyWins, ShouldBeNil)
			So(*o.FantasyLosses, ShouldEqual, 5)
			So(o.HasRosterUpdate(), ShouldBeTrue)
			So(o.JSON, ShouldBeTrue)
		})

		Convey("When a count is not a number", func() {
			_, err := cli.Parse([]string{"-wins", "many"}, &errOut)
			So(errors.Is(err, cli.ErrUsage), ShouldBeTrue)
		})

		Convey("When team fields are given without a team", func() {
			_, err := cli.Parse([]string{"-wins", "3"}, &errOut)
			So(errors.Is(err, cli.ErrUsage), ShouldBeTrue)
		})

		Convey("When refresh and no-espn are combined", func() {
			_, err := cli.Parse([]string{"-refresh-fantasy", "-no-espn"}, &errOut)
			So(errors.Is(err, cli.ErrUsage), ShouldBeTrue)
		})

		Convey("When a positional argument is given", func() {
			_, err := cli.Parse([]string{"report"}, &errOut)
			So(errors.Is(err, cli.ErrUsage), ShouldBeTrue)
		})

		Convey("When -h is given", func() {
			_, err := cli.Parse([]string{"-h"}, &errOut)
			So(errors.Is(err, flag.ErrHelp), ShouldBeTrue)
			So(errOut.String(), ShouldContainSubstring, "Usage:")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a team document and a runner", t, func() {
		ctx := context.Background()
		path := writeDoc(t)
		var out bytes.Buffer
		clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 15, 20, 0, 0, 0, time.UTC))
		roster := &fakeRoster{team: espn.FantasyTeam{ID: 3, Name: "Gridiron Gurus", Wins: 3, Losses: 4, CurrentWeek: 8, Streak: []string{"W", "L"}}}

		runner := cli.NewRunner(config.New(),
			cli.WithOutput(&out),
			cli.WithClock(clock),
			cli.WithRosterFactory(func(config.ESPN) service.RosterSource { return roster }),
		)

		Convey("When help is requested", func() {
			So(runner.Run(ctx, cli.Options{Help: true}), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "-update-team")
		})

		Convey("When ESPN help is requested", func() {
			So(runner.Run(ctx, cli.Options{ESPNHelp: true}), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "LEAGUE ID")
		})

		Convey("When no options are given", func() {
			err := runner.Run(ctx, cli.Options{Config: path})

			Convey("Then the report is printed", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "DEPRESSION DASHBOARD")
				So(out.String(), ShouldContainSubstring, "Boston Celtics")
				So(out.String(), ShouldContainSubstring, "Record: 1-4")
			})
		})

		Convey("When a team is updated with a rivalry loss", func() {
			wins := 40
			err := runner.Run(ctx, cli.Options{Config: path, UpdateTeam: "celtics", Wins: &wins, RivalryLoss: "Knicks"})

			Convey("Then the document is saved with the change", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Updated Boston Celtics")
				doc := loadDoc(path)
				So(doc.Teams[0].Record.Wins, ShouldEqual, 40)
				So(doc.Teams[0].Record.Losses, ShouldEqual, 30)
				So(doc.Teams[0].RecentRivalryLosses, ShouldResemble, []string{"Knicks"})
				So(doc.Teams[0].RecentRivalryLossTimestamps, ShouldResemble, []string{"2025-05-15T20:00:00Z"})
			})

			Convey("Then repeating the loss does not duplicate it", func() {
				So(runner.Run(ctx, cli.Options{Config: path, UpdateTeam: "celtics", RivalryLoss: "Knicks"}), ShouldBeNil)
				So(loadDoc(path).Teams[0].RecentRivalryLosses, ShouldHaveLength, 1)
			})
		})

		Convey("When the team name matches several teams", func() {
			wins := 1
			err := runner.Run(ctx, cli.Options{Config: path, UpdateTeam: "boston", Wins: &wins})

			Convey("Then nothing is saved", func() {
				So(errors.Is(err, repository.ErrAmbiguous), ShouldBeTrue)
				So(loadDoc(path).Teams[0].Record.Wins, ShouldEqual, 30)
			})
		})

		Convey("When the team is unknown", func() {
			wins := 1
			err := runner.Run(ctx, cli.Options{Config: path, UpdateTeam: "xyzzy", Wins: &wins})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the driver and fantasy team are updated", func() {
			pos, dnfs, losses := 4, 2, 6
			err := runner.Run(ctx, cli.Options{Config: path, F1Position: &pos, F1DNFs: &dnfs, FantasyLosses: &losses})

			Convey("Then both sections change in one save", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Updated Max Verstappen")
				So(out.String(), ShouldContainSubstring, "Updated Gridiron Gurus")
				doc := loadDoc(path)
				So(*doc.Driver.ChampionshipPosition, ShouldEqual, 4)
				So(doc.Driver.RecentDNFs, ShouldEqual, 2)
				So(doc.Fantasy.Record.Wins, ShouldEqual, 1)
				So(doc.Fantasy.Record.Losses, ShouldEqual, 6)
			})
		})

		Convey("When JSON output is requested", func() {
			err := runner.Run(ctx, cli.Options{Config: path, JSON: true})

			Convey("Then the score is printed as JSON", func() {
				So(err, ShouldBeNil)
				var body map[string]interface{}
				So(json.Unmarshal(out.Bytes(), &body), ShouldBeNil)
				So(body["score"], ShouldBeGreaterThan, 0)
				So(body["level"], ShouldNotBeEmpty)
				So(body["breakdown"], ShouldNotBeEmpty)
			})
		})

		Convey("When the fantasy team is refreshed", func() {
			err := runner.Run(ctx, cli.Options{Config: path, RefreshFantasy: true})

			Convey("Then the league record is saved and reported", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Refreshed Gridiron Gurus: 3-4")
				So(out.String(), ShouldContainSubstring, "Record: 3-4")
				doc := loadDoc(path)
				So(doc.Fantasy.Record.Losses, ShouldEqual, 4)
				So(doc.Fantasy.RecentStreak, ShouldResemble, []string{"W", "L"})
			})
		})

		Convey("When the refresh fails", func() {
			roster.err = errors.New("league down")
			err := runner.Run(ctx, cli.Options{Config: path, RefreshFantasy: true})

			Convey("Then a warning is printed and the stored record is used", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Warning: could not refresh fantasy data")
				So(out.String(), ShouldContainSubstring, "Record: 1-4")
			})
		})

		Convey("When ESPN is disabled and a refresh is forced", func() {
			o := cli.Options{Config: path, NoESPN: true}
			o.RefreshFantasy = true
			err := runner.Run(ctx, o)

			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, service.ErrRefreshUnavailable.Error())
		})
	})
}
