package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/moodmeter/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TeamsFile, convey.ShouldEqual, "teams_config.json")
				convey.So(cfg.RefreshEnabled, convey.ShouldBeFalse)
				convey.So(cfg.DecayRate, convey.ShouldEqual, 0.3)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOOD_ADDR", ":8080")
			_ = os.Setenv("MOOD_TEAMS_FILE", "/data/teams.json")
			_ = os.Setenv("MOOD_REFRESH_ENABLED", "true")
			_ = os.Setenv("MOOD_REFRESH_CRON", "*/30 * * * *")
			_ = os.Setenv("MOOD_ESPN_TIMEOUT_MS", "2500")
			_ = os.Setenv("MOOD_CORS_ORIGINS", "http://localhost:3000,https://mood.example.com")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TeamsFile, convey.ShouldEqual, "/data/teams.json")
				convey.So(cfg.RefreshEnabled, convey.ShouldBeTrue)
				convey.So(cfg.RefreshCron, convey.ShouldEqual, "*/30 * * * *")
				convey.So(cfg.ESPNTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"http://localhost:3000", "https://mood.example.com"})
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_format: json
reports_dir: /tmp/reports
timezone: America/New_York
individual_impact_names:
  - cowboys
  - verstappen
decay_rate: 0.25
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOOD_CONFIG", tmpFile)
			_ = os.Setenv("MOOD_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ReportsDir, convey.ShouldEqual, "/tmp/reports")
				convey.So(cfg.IndividualImpactNames, convey.ShouldResemble, []string{"cowboys", "verstappen"})
				convey.So(cfg.DecayRate, convey.ShouldEqual, 0.25)
				loc, err := cfg.Location()
				convey.So(err, convey.ShouldBeNil)
				convey.So(loc.String(), convey.ShouldEqual, "America/New_York")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("MOOD_CONFIG", "/non/existent/file.yaml")
			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the refresh cron is invalid", func() {
			_ = os.Setenv("MOOD_REFRESH_ENABLED", "true")
			_ = os.Setenv("MOOD_REFRESH_CRON", "every tuesday")
			cfg, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the address is empty", func() {
			_ = os.Setenv("MOOD_ADDR", "")
			cfg, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timezone is unknown", func() {
			_ = os.Setenv("MOOD_TIMEZONE", "Mars/Olympus_Mons")
			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestESPNCredentials(t *testing.T) {
	convey.Convey("Given ESPN variables in the environment", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()
		_ = os.Setenv("ESPN_LEAGUE_ID", "123456")
		_ = os.Setenv("ESPN_YEAR", "2025")
		_ = os.Setenv("ESPN_S2", "cookie")

		convey.Convey("When they are loaded", func() {
			creds, err := config.LoadESPN()

			convey.Convey("Then they are parsed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(creds.LeagueID, convey.ShouldEqual, "123456")
				convey.So(creds.Year, convey.ShouldEqual, 2025)
				convey.So(creds.S2, convey.ShouldEqual, "cookie")
				convey.So(creds.Configured(), convey.ShouldBeTrue)
			})

			convey.Convey("Then document values only fill the gaps", func() {
				merged := creds.Merge(config.ESPN{LeagueID: "999", TeamID: 4, SWID: "{abc}"})
				convey.So(merged.LeagueID, convey.ShouldEqual, "123456")
				convey.So(merged.TeamID, convey.ShouldEqual, 4)
				convey.So(merged.SWID, convey.ShouldEqual, "{abc}")
			})
		})

		convey.Convey("When the year is not a number", func() {
			_ = os.Setenv("ESPN_YEAR", "next")
			_, err := config.LoadESPN()

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MOOD_CONFIG",
		"MOOD_ADDR",
		"MOOD_TEAMS_FILE",
		"MOOD_REFRESH_ENABLED",
		"MOOD_REFRESH_CRON",
		"MOOD_ESPN_TIMEOUT_MS",
		"MOOD_CORS_ORIGINS",
		"MOOD_TIMEZONE",
		"ESPN_LEAGUE_ID",
		"ESPN_YEAR",
		"ESPN_TEAM_ID",
		"ESPN_TEAM_NAME",
		"ESPN_SWID",
		"ESPN_S2",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "mood-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
