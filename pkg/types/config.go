package types

import "time"

// AIConfig holds settings for the hosted generative-language API.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-3-flash-preview").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the credential for the API. It is read once at startup and
	// passed to the client; it is never looked up again.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the API root (e.g. "https://generativelanguage.googleapis.com/v1beta").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single remote call. The workflows enforce no timeout
	// of their own.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// RateLimitRetries is how many times an HTTP 429 is retried with
	// backoff (default 0, no retries).
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Address         string        `json:"address" yaml:"address" mapstructure:"address"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// AllowedOrigins lists the browser origins allowed by CORS. Empty allows all.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// CatalogConfig holds settings for the course catalog.
type CatalogConfig struct {
	// SeedFile replaces the built-in seed catalog when set.
	SeedFile string `json:"seed_file,omitempty" yaml:"seed_file,omitempty" mapstructure:"seed_file"`

	// ImageBase is the placeholder-art service used for generated courses.
	// The topic is appended as a path segment.
	ImageBase string `json:"image_base" yaml:"image_base" mapstructure:"image_base"`
}

// Config groups all settings for one running instance.
type Config struct {
	// Env selects the logger profile: local, dev, or prod.
	Env string `json:"env" yaml:"env" mapstructure:"env"`

	AI      AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}
