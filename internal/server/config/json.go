package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/flagx"
	"github.com/dmitrijs2005/paperkeeper/internal/timex"
)

// ConfigFileEnv names the variable consulted when no -c/-config flag is given.
const ConfigFileEnv = "CONFIG"

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so they can be written as "30s" or as nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url"`
	CacheBackend                 string         `json:"cache_backend"`
	CacheTTL                     timex.Duration `json:"cache_ttl"`
	CacheSize                    int            `json:"cache_size"`
	RedisAddr                    string         `json:"redis_addr"`
	RedisPassword                string         `json:"redis_password"`
	RedisDB                      int            `json:"redis_db"`
	RateLimit                    int            `json:"rate_limit"`
	RateLimitWindow              timex.Duration `json:"rate_limit_window"`
	MaxPDFBytes                  int64          `json:"max_pdf_bytes"`
	PDFFetchTimeout              timex.Duration `json:"pdf_fetch_timeout"`
	AllowLocalPDFHosts           bool           `json:"allow_local_pdf_hosts"`
	OpenAIBaseURL                string         `json:"openai_base_url"`
	OpenAIAPIKey                 string         `json:"openai_api_key"`
	SummaryModel                 string         `json:"summary_model"`
	SummaryMaxTokens             int            `json:"summary_max_tokens"`
	SummarizeMaxDuration         timex.Duration `json:"summarize_max_duration"`
	HealthCheckInterval          timex.Duration `json:"health_check_interval"`
	LogLevel                     string         `json:"log_level"`
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:             c.EndpointAddrHTTP,
		EndpointAddrGRPC:             c.EndpointAddrGRPC,
		DatabaseDSN:                  c.DatabaseDSN,
		SecretKey:                    c.SecretKey,
		AccessTokenValidityDuration:  timex.Duration{Duration: c.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: c.RefreshTokenValidityDuration},
		S3RootUser:                   c.S3RootUser,
		S3RootPassword:               c.S3RootPassword,
		S3Bucket:                     c.S3Bucket,
		S3Region:                     c.S3Region,
		S3BaseEndpoint:               c.S3BaseEndpoint,
		S3PublicBaseURL:              c.S3PublicBaseURL,
		CacheBackend:                 c.CacheBackend,
		CacheTTL:                     timex.Duration{Duration: c.CacheTTL},
		CacheSize:                    c.CacheSize,
		RedisAddr:                    c.RedisAddr,
		RedisPassword:                c.RedisPassword,
		RedisDB:                      c.RedisDB,
		RateLimit:                    c.RateLimit,
		RateLimitWindow:              timex.Duration{Duration: c.RateLimitWindow},
		MaxPDFBytes:                  c.MaxPDFBytes,
		PDFFetchTimeout:              timex.Duration{Duration: c.PDFFetchTimeout},
		AllowLocalPDFHosts:           c.AllowLocalPDFHosts,
		OpenAIBaseURL:                c.OpenAIBaseURL,
		OpenAIAPIKey:                 c.OpenAIAPIKey,
		SummaryModel:                 c.SummaryModel,
		SummaryMaxTokens:             c.SummaryMaxTokens,
		SummarizeMaxDuration:         timex.Duration{Duration: c.SummarizeMaxDuration},
		HealthCheckInterval:          timex.Duration{Duration: c.HealthCheckInterval},
		LogLevel:                     c.LogLevel,
	}
}

func (j *JsonConfig) apply(c *Config) {
	c.EndpointAddrHTTP = j.EndpointAddrHTTP
	c.EndpointAddrGRPC = j.EndpointAddrGRPC
	c.DatabaseDSN = j.DatabaseDSN
	c.SecretKey = j.SecretKey
	c.AccessTokenValidityDuration = j.AccessTokenValidityDuration.Duration
	c.RefreshTokenValidityDuration = j.RefreshTokenValidityDuration.Duration
	c.S3RootUser = j.S3RootUser
	c.S3RootPassword = j.S3RootPassword
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.S3PublicBaseURL = j.S3PublicBaseURL
	c.CacheBackend = j.CacheBackend
	c.CacheTTL = j.CacheTTL.Duration
	c.CacheSize = j.CacheSize
	c.RedisAddr = j.RedisAddr
	c.RedisPassword = j.RedisPassword
	c.RedisDB = j.RedisDB
	c.RateLimit = j.RateLimit
	c.RateLimitWindow = j.RateLimitWindow.Duration
	c.MaxPDFBytes = j.MaxPDFBytes
	c.PDFFetchTimeout = j.PDFFetchTimeout.Duration
	c.AllowLocalPDFHosts = j.AllowLocalPDFHosts
	c.OpenAIBaseURL = j.OpenAIBaseURL
	c.OpenAIAPIKey = j.OpenAIAPIKey
	c.SummaryModel = j.SummaryModel
	c.SummaryMaxTokens = j.SummaryMaxTokens
	c.SummarizeMaxDuration = j.SummarizeMaxDuration.Duration
	c.HealthCheckInterval = j.HealthCheckInterval.Duration
	c.LogLevel = j.LogLevel
}

// parseJson overlays Config with values from the JSON file named by
// -c/-config (or $CONFIG). Keys missing from the file keep their current
// values. Read or decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath(ConfigFileEnv)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}
