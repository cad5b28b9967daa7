package config

import (
	"os"

	"github.com/joho/godotenv"
)

// backendURLEnv is the variable the original deployment used to select the
// backend per environment; keeping the name lets existing .env files work.
const backendURLEnv = "BACKEND_DEPLOYED_URL"

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first, without overriding
// variables that are already set.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(backendURLEnv); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("PUBKEEPER_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if os.Getenv("PUBKEEPER_DEBUG") != "" {
		cfg.Debug = true
	}
}
