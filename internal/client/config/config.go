package config

import "time"

// Config holds runtime settings for the PaperKeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the PaperKeeper HTTP API.
//   - RequestTimeout: deadline for ordinary API calls.
//   - SummarizeTimeout: hard cutoff for a summary stream.
//   - TokenFile: where the session tokens are kept between runs.
type Config struct {
	ServerURL        string
	RequestTimeout   time.Duration
	SummarizeTimeout time.Duration
	TokenFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.SummarizeTimeout = 55 * time.Second
	c.TokenFile = ".paperkeeper_session.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
