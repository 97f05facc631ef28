// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New builds a Config holding every default.
//   - Load layers a YAML file and MOOD_* environment variables on top.
//   - ESPN credentials live in the environment and are read separately.
package config

import (
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// TeamsFile is the JSON snapshot document with teams, driver and roster.
	TeamsFile string `koanf:"teams_file"`
	// ReportsDir receives timestamped text reports after scheduled refreshes.
	// Empty disables report files.
	ReportsDir string `koanf:"reports_dir"`

	// RefreshEnabled turns on the periodic fantasy refresh.
	RefreshEnabled bool `koanf:"refresh_enabled"`
	// RefreshCron is a standard five-field cron expression.
	RefreshCron string `koanf:"refresh_cron"`
	// Timezone is the IANA zone the cron expression runs in.
	Timezone string `koanf:"timezone"`

	// IndividualImpactNames are case-insensitive name fragments of teams
	// scored with the individual-impact profile.
	IndividualImpactNames []string `koanf:"individual_impact_names"`

	// DecayRate is the base per-day decay rate of the scoring engine.
	DecayRate float64 `koanf:"decay_rate"`

	// CORSOrigins lists origins allowed to call the API. "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`

	// ESPNEnabled allows fantasy data to be fetched from ESPN.
	ESPNEnabled bool `koanf:"espn_enabled"`
	// ESPNTimeoutMS bounds each ESPN request.
	ESPNTimeoutMS int `koanf:"espn_timeout_ms"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        ":9080",
		TeamsFile:   "teams_config.json",
		RefreshCron: "0 */6 * * *",
		Timezone:    "UTC",
		IndividualImpactNames: []string{
			"cowboys",
			"dallas cowboys",
			"max verstappen",
			"verstappen",
			"north carolina",
			"tar heels",
			"carolina",
		},
		DecayRate:     0.3,
		CORSOrigins:   []string{"*"},
		ESPNEnabled:   true,
		ESPNTimeoutMS: 10_000,
	}
}

// IsIndividualImpact reports whether name matches one of the configured
// individual-impact fragments.
func (c *Config) IsIndividualImpact(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range c.IndividualImpactNames {
		frag = strings.ToLower(strings.TrimSpace(frag))
		if frag != "" && strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
