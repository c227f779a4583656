package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fortuneseal/internal/flagx"
	"github.com/dmitrijs2005/fortuneseal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so they may be strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabaseDSN         string         `json:"database_dsn"`
	RevealDelay         timex.Duration `json:"reveal_delay"`
	Timezone            string         `json:"timezone"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with the fields present in the JSON file named
// by -c or -config. It panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RevealDelay.Duration != 0 {
		cfg.RevealDelay = jc.RevealDelay.Duration
	}
	if jc.Timezone != "" {
		cfg.Timezone = jc.Timezone
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
