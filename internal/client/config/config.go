package config

import "time"

// Config holds runtime settings for the terminal client.
//
//   - ServerURL: base URL of the journal API.
//   - DatabasePath: SQLite file holding the token, settings and history mirror.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: level of diagnostic logs written to stderr.
type Config struct {
	ServerURL           string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.DatabasePath = "moodjournal.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "warn"
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
