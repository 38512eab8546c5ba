package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with BIRKA_* environment variables. A .env file
// in the working directory is loaded first if present; variables already set
// in the process environment win over the file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("BIRKA_API_URL"); ok && v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := os.LookupEnv("BIRKA_INIT_DATA"); ok {
		cfg.InitData = v
	}
	if v, ok := os.LookupEnv("BIRKA_DB"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("BIRKA_DOWNLOAD_DIR"); ok && v != "" {
		cfg.DownloadDir = v
	}
	if v, ok := os.LookupEnv("BIRKA_LOG_FILE"); ok {
		cfg.LogFile = v
	}
}
