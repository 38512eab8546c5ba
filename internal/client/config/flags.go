package config

import (
	"flag"
	"io"
	"strings"

	"github.com/birkaops/birka/internal/flagx"
)

// parseFlags populates Config from the flags this package owns; every other
// argument is filtered out first (see flagx.FilterArgs).
func parseFlags(cfg *Config, args []string) error {
	own := flagx.FilterArgs(args, []string{"-u", "-d", "-o", "-l", "-v"})

	fs := flag.NewFlagSet("birka", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	apiURL := fs.String("u", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "directory for downloaded files")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(own); err != nil {
		return err
	}
	cfg.APIBaseURL = strings.TrimRight(*apiURL, "/")
	return nil
}
