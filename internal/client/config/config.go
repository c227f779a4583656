package config

import "time"

// Config holds runtime settings for the fortune seal CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the optional oracle gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabaseDSN: path of the local SQLite file.
//   - RevealDelay: pacing pause shown before a fresh fortune is revealed.
//   - Timezone: IANA zone every period boundary is computed in.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabaseDSN         string
	RevealDelay         time.Duration
	Timezone            string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabaseDSN = "fortune.db"
	c.RevealDelay = 1500 * time.Millisecond
	c.Timezone = "Asia/Seoul"
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
