// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the oracle server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - EndpointAddrHTTP: bind address for the JSON API and /metrics.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps analytics log-only.
//   - AllowedOrigin: CORS origin of the HTTP API.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: backup archive storage. An empty
//     bucket disables remote backups.
//   - PresignExpiry: lifetime of issued backup URLs.
//   - ShutdownTimeout: grace period for the HTTP server on stop.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC string
	EndpointAddrHTTP string
	DatabaseDSN      string
	AllowedOrigin    string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	PresignExpiry    time.Duration
	ShutdownTimeout  time.Duration
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials match a local MinIO and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.AllowedOrigin = "*"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.PresignExpiry = 15 * time.Minute
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// BackupsEnabled reports whether an archive bucket is configured.
func (c *Config) BackupsEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
