package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/birkaops/birka/internal/flagx"
)

// Duration decodes either a Go duration string ("2s") or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", string(b))
	}
	*d = Duration(n)
	return nil
}

// jsonConfig is used only for unmarshalling; pointer fields tell "absent"
// apart from zero values.
type jsonConfig struct {
	APIURL            *string   `json:"api_url"`
	InitData          *string   `json:"init_data"`
	DBPath            *string   `json:"db_path"`
	DownloadDir       *string   `json:"download_dir"`
	LogFile           *string   `json:"log_file"`
	Debug             *bool     `json:"debug"`
	DataURIMaxBytes   *int64    `json:"data_uri_max_bytes"`
	ReceivingDebounce *Duration `json:"receiving_debounce"`
	ScannerDebounce   *Duration `json:"scanner_debounce"`
}

// parseJSON overlays Config with the JSON file named by -c/-config. Without
// the flag nothing happens.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIURL != nil {
		cfg.APIBaseURL = strings.TrimRight(*jc.APIURL, "/")
	}
	if jc.InitData != nil {
		cfg.InitData = *jc.InitData
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.DownloadDir != nil {
		cfg.DownloadDir = *jc.DownloadDir
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	if jc.DataURIMaxBytes != nil {
		cfg.DataURIMaxBytes = *jc.DataURIMaxBytes
	}
	if jc.ReceivingDebounce != nil {
		cfg.ReceivingDebounce = time.Duration(*jc.ReceivingDebounce)
	}
	if jc.ScannerDebounce != nil {
		cfg.ScannerDebounce = time.Duration(*jc.ScannerDebounce)
	}
	return nil
}
