package config

import "time"

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Site      SiteConfig      `yaml:"site"`
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds settings for the animals API client.
// The credential itself is never stored here: KeyEnv names the
// environment variable that holds it, and it is read on every fetch.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"ANIMALS_API_BASE_URL" env-default:"https://api.api-ninjas.com/v1/animals"`
	KeyEnv  string        `yaml:"key_env"  env:"ANIMALS_API_KEY_ENV"  env-default:"API_NINJAS_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"ANIMALS_API_TIMEOUT"  env-default:"10s"`
}

// SiteConfig holds page generation settings.
type SiteConfig struct {
	// TemplatePath is the HTML template file. Empty selects the embedded default.
	TemplatePath  string `yaml:"template_path"  env:"SITE_TEMPLATE_PATH"  env-default:"animals_template.html"`
	OutputPath    string `yaml:"output_path"    env:"SITE_OUTPUT_PATH"    env-default:"animals.html"`
	DefaultAnimal string `yaml:"default_animal" env:"SITE_DEFAULT_ANIMAL" env-default:"Fox"`
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// RateLimitConfig limits page requests per client IP in serve mode.
// Every page request costs one upstream API call.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
