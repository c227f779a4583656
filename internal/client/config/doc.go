// Package config loads runtime configuration for the fortune seal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the oracle gRPC endpoint
//	-i int      online status check interval (seconds)
//	-d string   local SQLite database file
//	-r int      reveal pacing delay (milliseconds)
//	-z string   reference timezone (IANA name)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_dsn": "fortune.db",
//	  "reveal_delay": "1500ms",
//	  "timezone": "Asia/Seoul",
//	  "log_level": "warn"
//	}
package config
