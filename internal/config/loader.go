package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

const (
	envPrefix  = "MOOD_"
	envFileVar = "MOOD_CONFIG"
)

// listKeys are read from the environment as comma-separated lists.
var listKeys = map[string]struct{}{ //nolint:gochecknoglobals // fixed lookup table
	"individual_impact_names": {},
	"cors_origins":            {},
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MOOD_CONFIG is set
//  3. env (prefix MOOD_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// MOOD_TEAMS_FILE -> teams_file. Underscores stay to match the koanf tags.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.TeamsFile == "" {
		return fmt.Errorf("%w: teams_file must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.DecayRate <= 0 {
		return fmt.Errorf("%w: decay_rate must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RefreshEnabled {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			return fmt.Errorf("%w: refresh_cron %q: %w", ErrInvalidConfig, c.RefreshCron, err)
		}
	}
	return nil
}

// Location resolves Timezone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// ESPNTimeout returns the per-request ESPN timeout.
func (c *Config) ESPNTimeout() time.Duration {
	return time.Duration(c.ESPNTimeoutMS) * time.Millisecond
}
