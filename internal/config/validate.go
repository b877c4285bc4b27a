// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Jellyfin is optional; stats endpoints report 503 without it.
	if c.Jellyfin.URL != "" {
		u, err := url.Parse(c.Jellyfin.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("jellyfin.url: must be an absolute http(s) URL, got %q", c.Jellyfin.URL))
		}
	}
	if c.Jellyfin.Timeout.Duration < 0 {
		errs = append(errs, "jellyfin.timeout: must not be negative")
	}
	if c.Jellyfin.SeriesCacheTTL.Duration < 0 {
		errs = append(errs, "jellyfin.series_cache_ttl: must not be negative")
	}

	// Admin validation
	if c.Admin.PasswordHash != "" && !strings.HasPrefix(c.Admin.PasswordHash, "$2") {
		errs = append(errs, "admin.password_hash: must be a bcrypt hash (run 'vidio admin hash-password')")
	}
	if c.Admin.TokenTTL.Duration < 0 {
		errs = append(errs, "admin.token_ttl: must not be negative")
	}

	// Landing validation
	if c.Landing.DefaultLang != "" {
		if _, err := language.Parse(c.Landing.DefaultLang); err != nil {
			errs = append(errs, fmt.Sprintf("landing.default_lang: invalid language tag %q", c.Landing.DefaultLang))
		}
	}

	// Rate limit validation
	if c.RateLimit.LoginRequests < 0 {
		errs = append(errs, "ratelimit.login_requests: must not be negative")
	}

	return errs
}
