// Package config loads runtime configuration for the Birka terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally from a .env file in the working
//     directory (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJSON).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-u string   REST API base URL, e.g. https://birka.example/api/v1
//	-d string   path of the local SQLite database
//	-o string   directory for downloaded files
//	-l string   log file (JSON lines, rotated); empty logs to stderr
//	-v          verbose (debug) logging
//
// Environment
//
//	BIRKA_API_URL, BIRKA_INIT_DATA, BIRKA_DB, BIRKA_DOWNLOAD_DIR, BIRKA_LOG_FILE
//
// # JSON schema
//
// Durations accept strings like "500ms" or integer nanoseconds:
//
//	{
//	  "api_url": "https://birka.example/api/v1",
//	  "db_path": "birka.db",
//	  "download_dir": "downloads",
//	  "log_file": "birka.log",
//	  "data_uri_max_bytes": 5242880,
//	  "receiving_debounce": "500ms",
//	  "scanner_debounce": "2s"
//	}
package config
