package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DatabasePath     string `koanf:"database_path"`
	BaseURL          string `koanf:"base_url"`
	Port             string `koanf:"port"`
	OIDCIssuer       string `koanf:"oidc_issuer"`
	OIDCClientID     string `koanf:"oidc_client_id"`
	OIDCClientSecret string `koanf:"oidc_client_secret"`
	OIDCRedirectURL  string `koanf:"oidc_redirect_url"`
	SessionSecret    string `koanf:"session_secret"`
	LogLevel         string `koanf:"log_level"`
	LogFormat        string `koanf:"log_format"`
	LogFile          string `koanf:"log_file"`
	Timezone         string `koanf:"timezone"`

	MissedReminderInterval time.Duration `koanf:"missed_reminder_interval"`
	GameActivityInterval   time.Duration `koanf:"game_activity_interval"`
	ChatRatePerMinute      int           `koanf:"chat_rate_per_minute"`

	location *time.Location
}

var defaults = map[string]interface{}{
	"database_path":            "./data/memory-care.db",
	"port":                     "8080",
	"log_level":                "info",
	"log_format":               "json",
	"missed_reminder_interval": "1h",
	"game_activity_interval":   "6h",
	"chat_rate_per_minute":     30,
}

// Load reads defaults, then the YAML file named by CONFIG_FILE (if any), then
// environment variables. DATABASE_PATH maps to database_path and so on.
func Load() (Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(key string) string {
		if key == "CONFIG_FILE" {
			return ""
		}
		return strings.ToLower(key)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config *Config) validate() error {
	if config.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	location := time.Local
	if config.Timezone != "" {
		loaded, err := time.LoadLocation(config.Timezone)
		if err != nil {
			return fmt.Errorf("loading TIMEZONE %q: %w", config.Timezone, err)
		}
		location = loaded
	}
	config.location = location

	if config.MissedReminderInterval <= 0 || config.GameActivityInterval <= 0 {
		return fmt.Errorf("job intervals must be positive")
	}
	return nil
}

// Location is the server's calendar-day timezone, used when a request does
// not name its own.
func (config Config) Location() *time.Location {
	if config.location == nil {
		return time.Local
	}
	return config.location
}
