package config

import (
	"encoding/json"
	"os"
	"time"

	"pubkeeper/internal/flagx"
	"pubkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	BackendURL          string         `json:"backend_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SessionPollInterval timex.Duration `json:"session_poll_interval"`
	DataFile            string         `json:"data_file"`
	Debug               *bool          `json:"debug"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. Absent file path means no JSON layer. Only fields
// present in the file override earlier layers.
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

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SessionPollInterval.Duration != 0 {
		cfg.SessionPollInterval = time.Duration(jc.SessionPollInterval.Duration)
	}
	if jc.DataFile != "" {
		cfg.DataFile = jc.DataFile
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
