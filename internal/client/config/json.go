package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/voicememo/internal/flagx"
	"github.com/dmitrijs2005/voicememo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals may
// be strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr   string         `json:"server_endpoint_addr"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	DatabasePath         string         `json:"database_path"`
	TranscriptionTimeout timex.Duration `json:"transcription_timeout"`
	DefaultLanguage      string         `json:"default_language"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Missing fields keep their current values; read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	loadJson(cfg, flagx.JsonConfigFlags())
}

func loadJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.TranscriptionTimeout.Duration != 0 {
		cfg.TranscriptionTimeout = jc.TranscriptionTimeout.Duration
	}
	if jc.DefaultLanguage != "" {
		cfg.DefaultLanguage = jc.DefaultLanguage
	}
}
