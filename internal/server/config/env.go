package config

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/petguard/internal/flagx"
)

// parseEnv overlays PETGUARD_* variables onto config, after loading the
// dotenv file named by -env. Malformed numbers or durations panic, like a
// malformed JSON file does.
func parseEnv(config *Config) {
	if err := flagx.LoadEnvFile(); err != nil {
		panic(err)
	}

	envString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "SECRET_KEY")
	envDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	envDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	envString(&config.ServiceToken, "SERVICE_TOKEN")
	if v, ok := flagx.LookupEnv("CHAIN_ID"); ok {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			panic(err)
		}
		config.ChainID = id
	}
	envString(&config.RegistryAddress, "REGISTRY_ADDRESS")
	envDuration(&config.NonceTTL, "NONCE_TTL")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envDuration(&config.ArchiveInterval, "ARCHIVE_INTERVAL")
}

func envString(dst *string, name string) {
	if v, ok := flagx.LookupEnv(name); ok {
		*dst = v
	}
}

func envDuration(dst *time.Duration, name string) {
	if v, ok := flagx.LookupEnv(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
