package config

import (
	"fmt"
	"time"

	"github.com/birkaops/birka/internal/common"
)

// Config holds runtime settings of the client.
type Config struct {
	// APIBaseURL is prepended to every request path.
	APIBaseURL string
	// InitData is the identity blob handed over by the Telegram host. It is
	// never persisted.
	InitData string

	DBPath      string
	DownloadDir string
	LogFile     string
	Debug       bool

	// DataURIMaxBytes gates handing a file to the host link opener as a
	// data URI.
	DataURIMaxBytes int64

	// Debounce windows of the two scanning flows. They differ on purpose
	// and are kept separate.
	ReceivingDebounce time.Duration
	ScannerDebounce   time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000" + common.DefaultAPIPath
	c.InitData = ""
	c.DBPath = "birka.db"
	c.DownloadDir = "downloads"
	c.LogFile = ""
	c.Debug = false
	c.DataURIMaxBytes = 5 * 1024 * 1024
	c.ReceivingDebounce = 500 * time.Millisecond
	c.ScannerDebounce = 2000 * time.Millisecond
}

// LoadConfig builds a Config from defaults, environment, JSON and flags (in
// that order). args are the command-line arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
