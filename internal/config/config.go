// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Jellyfin  JellyfinConfig  `toml:"jellyfin"`
	Admin     AdminConfig     `toml:"admin"`
	Landing   LandingConfig   `toml:"landing"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// JellyfinConfig points the daemon at the media server stats are read from.
type JellyfinConfig struct {
	URL            string   `toml:"url"`
	Client         string   `toml:"client"`
	Device         string   `toml:"device"`
	DeviceID       string   `toml:"device_id"`
	Timeout        Duration `toml:"timeout"`
	SeriesCacheTTL Duration `toml:"series_cache_ttl"`
}

// AdminConfig gates changelog and settings edits behind a password.
// PasswordHash is a bcrypt hash; see `vidio admin hash-password`.
type AdminConfig struct {
	PasswordHash string   `toml:"password_hash"`
	TokenTTL     Duration `toml:"token_ttl"`
}

type LandingConfig struct {
	DefaultLang string `toml:"default_lang"`
}

// RateLimitConfig limits login attempts per client IP.
type RateLimitConfig struct {
	LoginRequests int      `toml:"login_requests"`
	LoginWindow   Duration `toml:"login_window"`
}

// Duration is a time.Duration that decodes from TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Load reads, substitutes, parses, defaults and validates the configuration file.
// Unresolved environment variables and validation failures are returned
// together as an *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/vidio.db"
	}
	if c.Jellyfin.Client == "" {
		c.Jellyfin.Client = "Vidio"
	}
	if c.Jellyfin.Device == "" {
		c.Jellyfin.Device = "vidiod"
	}
	if c.Jellyfin.Timeout.Duration == 0 {
		c.Jellyfin.Timeout.Duration = 30 * time.Second
	}
	if c.Admin.TokenTTL.Duration == 0 {
		c.Admin.TokenTTL.Duration = 12 * time.Hour
	}
	if c.Landing.DefaultLang == "" {
		c.Landing.DefaultLang = "en"
	}
	if c.RateLimit.LoginRequests == 0 {
		c.RateLimit.LoginRequests = 10
	}
	if c.RateLimit.LoginWindow.Duration == 0 {
		c.RateLimit.LoginWindow.Duration = time.Minute
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and reports the ones
// that could not be resolved. Unresolved references are left in place.
// An empty variable counts as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
