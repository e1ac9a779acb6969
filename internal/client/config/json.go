package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/flagx"
	"github.com/dmitrijs2005/paperkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Zero values leave the
// corresponding Config field untouched.
type JsonConfig struct {
	ServerURL        string         `json:"server_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	SummarizeTimeout timex.Duration `json:"summarize_timeout"`
	TokenFile        string         `json:"token_file"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// It panics on read or decode errors.
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SummarizeTimeout.Duration > 0 {
		cfg.SummarizeTimeout = jc.SummarizeTimeout.Duration
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
}
