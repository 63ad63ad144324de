package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	DB      DBConfig      `toml:"db"`
	API     APIConfig     `toml:"api"`
	Points  PointsConfig  `toml:"points"`
	Ranking RankingConfig `toml:"ranking"`
	Badges  BadgesConfig  `toml:"badges"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type PointsConfig struct {
	BatchChunkSize  int `toml:"batch_chunk_size"`
	MaxRetries      int `toml:"max_retries"`
	CacheSize       int `toml:"cache_size"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

func (c PointsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

type RankingConfig struct {
	Timezone       string `toml:"timezone"`
	TieBreak       string `toml:"tie_break"`
	GlobalLimit    int    `toml:"global_limit"`
	DailyLimit     int    `toml:"daily_limit"`
	RegionLimit    int    `toml:"region_limit"`
	ChallengeLimit int    `toml:"challenge_limit"`
}

// Location loads the zone the daily window is cut in.
func (c RankingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

type BadgesConfig struct {
	Regions           []string `toml:"regions"`
	ItemConcurrency   int      `toml:"item_concurrency"`
	IntervalMinutes   int      `toml:"interval_minutes"`
	RunTimeoutSeconds int      `toml:"run_timeout_seconds"`
}

func (c BadgesConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c BadgesConfig) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}

func Default() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "progression",
			PoolSize: 10,
		},
		API: APIConfig{Host: "0.0.0.0", Port: 8080},
		Points: PointsConfig{
			BatchChunkSize:  500,
			MaxRetries:      3,
			CacheSize:       10000,
			CacheTTLSeconds: 300,
		},
		Ranking: RankingConfig{
			Timezone:       "Europe/Paris",
			TieBreak:       "earliest",
			GlobalLimit:    100,
			DailyLimit:     100,
			RegionLimit:    100,
			ChallengeLimit: 100,
		},
		Badges: BadgesConfig{
			ItemConcurrency:   1,
			IntervalMinutes:   60,
			RunTimeoutSeconds: 600,
		},
	}
}

// LoadConfig reads path over Default(); keys missing from the file keep
// their default value.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Points.BatchChunkSize < 1 {
		errs = append(errs, fmt.Errorf("points.batch_chunk_size must be positive, got %d", c.Points.BatchChunkSize))
	}
	if c.Points.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("points.max_retries must not be negative, got %d", c.Points.MaxRetries))
	}
	if c.Points.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("points.cache_size must be positive, got %d", c.Points.CacheSize))
	}
	switch c.Ranking.TieBreak {
	case "user_id", "earliest":
	default:
		errs = append(errs, fmt.Errorf("ranking.tie_break must be user_id or earliest, got %q", c.Ranking.TieBreak))
	}
	if _, err := c.Ranking.Location(); err != nil {
		errs = append(errs, err)
	}
	for name, limit := range map[string]int{
		"global_limit":    c.Ranking.GlobalLimit,
		"daily_limit":     c.Ranking.DailyLimit,
		"region_limit":    c.Ranking.RegionLimit,
		"challenge_limit": c.Ranking.ChallengeLimit,
	} {
		if limit < 1 {
			errs = append(errs, fmt.Errorf("ranking.%s must be positive, got %d", name, limit))
		}
	}
	if c.Badges.ItemConcurrency < 1 {
		errs = append(errs, fmt.Errorf("badges.item_concurrency must be positive, got %d", c.Badges.ItemConcurrency))
	}
	if c.Badges.IntervalMinutes < 1 {
		errs = append(errs, fmt.Errorf("badges.interval_minutes must be positive, got %d", c.Badges.IntervalMinutes))
	}
	seen := make(map[string]bool, len(c.Badges.Regions))
	for _, r := range c.Badges.Regions {
		if r == "" || seen[r] {
			errs = append(errs, fmt.Errorf("badges.regions has an empty or duplicate entry %q", r))
		}
		seen[r] = true
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
