package config

import "time"

// Config holds runtime settings for the VoiceMemo CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file holding the local snapshots.
//   - TranscriptionTimeout: bound on one transcription round trip.
//   - DefaultLanguage: transcription language when none is given.
type Config struct {
	ServerEndpointAddr   string
	OnlineCheckInterval  time.Duration
	DatabasePath         string
	TranscriptionTimeout time.Duration
	DefaultLanguage      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "voicememo.db"
	c.TranscriptionTimeout = 2 * time.Minute
	c.DefaultLanguage = "fr"
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
