package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Site.validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit: requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit: cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}
	return nil
}

func (a *APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", a.BaseURL)
	}
	if strings.TrimSpace(a.KeyEnv) == "" {
		return fmt.Errorf("key_env must not be empty")
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	return nil
}

func (s *SiteConfig) validate() error {
	if strings.TrimSpace(s.OutputPath) == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	if strings.TrimSpace(s.DefaultAnimal) == "" {
		return fmt.Errorf("default_animal must not be empty")
	}
	return nil
}
