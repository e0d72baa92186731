package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
//
// Recognized variables:
//
//	BLOG_API_URL          base URL of the backend API
//	BLOG_DB               path of the local credential database
//	BLOG_REQUEST_TIMEOUT  request timeout, Go duration syntax ("30s")
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BLOG_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BLOG_DB"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("BLOG_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
