package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variable names. A .env file in the working directory is
// loaded into the process environment by the main package before LoadConfig.
const (
	EnvGRPCAddr        = "POKER_GRPC_ADDR"
	EnvDatabaseDSN     = "POKER_DATABASE_DSN"
	EnvSecretKey       = "POKER_SECRET_KEY"
	EnvAccessTokenTTL  = "POKER_ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL = "POKER_REFRESH_TOKEN_TTL"
	EnvLoginRateLimit  = "POKER_LOGIN_RATE_LIMIT"
	EnvS3User          = "POKER_S3_USER"
	EnvS3Password      = "POKER_S3_PASSWORD"
	EnvS3Bucket        = "POKER_S3_BUCKET"
	EnvS3Region        = "POKER_S3_REGION"
	EnvS3Endpoint      = "POKER_S3_ENDPOINT"
	EnvArchiveEnabled  = "POKER_ARCHIVE_ENABLED"
	EnvLogLevel        = "POKER_LOG_LEVEL"
)

// parseEnv overlays values present in the environment. Malformed numbers,
// durations or booleans panic, like a malformed config file does.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			*dst = d
		}
	}

	str(EnvGRPCAddr, &config.EndpointAddrGRPC)
	str(EnvDatabaseDSN, &config.DatabaseDSN)
	str(EnvSecretKey, &config.SecretKey)
	dur(EnvAccessTokenTTL, &config.AccessTokenValidityDuration)
	dur(EnvRefreshTokenTTL, &config.RefreshTokenValidityDuration)
	str(EnvS3User, &config.S3RootUser)
	str(EnvS3Password, &config.S3RootPassword)
	str(EnvS3Bucket, &config.S3Bucket)
	str(EnvS3Region, &config.S3Region)
	str(EnvS3Endpoint, &config.S3BaseEndpoint)
	str(EnvLogLevel, &config.LogLevel)

	if v, ok := lookup(EnvLoginRateLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvLoginRateLimit, err))
		}
		config.LoginRateLimit = n
	}

	if v, ok := lookup(EnvArchiveEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvArchiveEnabled, err))
		}
		config.ArchiveEnabled = b
	}
}
