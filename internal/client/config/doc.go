// Package config loads runtime configuration for the PaperKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the HTTP API
//	-s int      summary stream cutoff (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "55s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "30s",
//	  "summarize_timeout": "55s",
//	  "token_file": ".paperkeeper_session.json"
//	}
package config
