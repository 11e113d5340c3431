package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for anything the config file and environment leave unset.
const (
	DefaultAPIBase         = "http://localhost:8080/api"
	DefaultHTTPTimeout     = 10 * time.Second
	DefaultPollInterval    = 2 * time.Second
	DefaultPollBackoffCap  = 30 * time.Second
	DefaultCountdown       = 15
	DefaultNotificationTTL = 5 * time.Second
)

type Config struct {
	API struct {
		BaseURL string `yaml:"baseUrl"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Lobby struct {
		PollInterval string `yaml:"pollInterval"`
		BackoffCap   string `yaml:"backoffCap"`
	} `yaml:"lobby"`
	Game struct {
		CountdownSeconds int `yaml:"countdownSeconds"`
	} `yaml:"game"`
	UI struct {
		NotificationTTL string `yaml:"notificationTtl"`
	} `yaml:"ui"`
	Log struct {
		File    string `yaml:"file"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"log"`
	History struct {
		File string `yaml:"file"`
	} `yaml:"history"`
}

// Load reads YAML config from path. A missing file is not an error; the
// zero config is returned so flags and defaults take over.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// CountdownSeconds returns the per-question answer window, falling back
// to the default when unset.
func (c Config) CountdownSeconds() int {
	if c.Game.CountdownSeconds > 0 {
		return c.Game.CountdownSeconds
	}
	return DefaultCountdown
}
