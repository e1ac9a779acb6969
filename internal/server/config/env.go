package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/paperkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// dotenvFiles are loaded before the environment is read. Variables already
// present in the process environment win over the file.
var dotenvFiles = []string{".env"}

// loadDotEnv is a seam for godotenv.Load.
var loadDotEnv = godotenv.Load

// parseEnv overlays Config with environment variables. Malformed numeric,
// boolean or duration values panic, like malformed flags do.
func parseEnv(c *Config) {
	for _, f := range dotenvFiles {
		if err := loadDotEnv(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	flagx.EnvString("HTTP_ADDRESS", &c.EndpointAddrHTTP)
	flagx.EnvString("GRPC_ADDRESS", &c.EndpointAddrGRPC)
	flagx.EnvString("DATABASE_URL", &c.DatabaseDSN)
	flagx.EnvString("DATABASE_DSN", &c.DatabaseDSN)
	flagx.EnvString("SECRET_KEY", &c.SecretKey)
	flagx.EnvString("S3_ROOT_USER", &c.S3RootUser)
	flagx.EnvString("S3_ROOT_PASSWORD", &c.S3RootPassword)
	flagx.EnvString("S3_BUCKET", &c.S3Bucket)
	flagx.EnvString("S3_REGION", &c.S3Region)
	flagx.EnvString("S3_BASE_ENDPOINT", &c.S3BaseEndpoint)
	flagx.EnvString("S3_PUBLIC_BASE_URL", &c.S3PublicBaseURL)
	flagx.EnvString("CACHE_BACKEND", &c.CacheBackend)
	flagx.EnvString("REDIS_ADDR", &c.RedisAddr)
	flagx.EnvString("REDIS_PASSWORD", &c.RedisPassword)
	flagx.EnvString("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	flagx.EnvString("OPENAI_API_KEY", &c.OpenAIAPIKey)
	flagx.EnvString("SUMMARY_MODEL", &c.SummaryModel)
	flagx.EnvString("LOG_LEVEL", &c.LogLevel)

	err := errors.Join(
		flagx.EnvDuration("ACCESS_TOKEN_VALIDITY", &c.AccessTokenValidityDuration),
		flagx.EnvDuration("REFRESH_TOKEN_VALIDITY", &c.RefreshTokenValidityDuration),
		flagx.EnvDuration("CACHE_TTL", &c.CacheTTL),
		flagx.EnvInt("CACHE_SIZE", &c.CacheSize),
		flagx.EnvInt("REDIS_DB", &c.RedisDB),
		flagx.EnvInt("RATE_LIMIT", &c.RateLimit),
		flagx.EnvDuration("RATE_LIMIT_WINDOW", &c.RateLimitWindow),
		flagx.EnvInt64("MAX_PDF_BYTES", &c.MaxPDFBytes),
		flagx.EnvDuration("PDF_FETCH_TIMEOUT", &c.PDFFetchTimeout),
		flagx.EnvBool("ALLOW_LOCAL_PDF_HOSTS", &c.AllowLocalPDFHosts),
		flagx.EnvInt("SUMMARY_MAX_TOKENS", &c.SummaryMaxTokens),
		flagx.EnvDuration("SUMMARIZE_MAX_DURATION", &c.SummarizeMaxDuration),
		flagx.EnvDuration("HEALTH_CHECK_INTERVAL", &c.HealthCheckInterval),
	)
	if err != nil {
		panic(err)
	}
}
