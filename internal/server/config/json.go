package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/petguard/internal/flagx"
	"github.com/dmitrijs2005/petguard/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept both "90s"
// strings and integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	ServiceToken                 *string         `json:"service_token"`
	ChainID                      *uint64         `json:"chain_id"`
	RegistryAddress              *string         `json:"registry_address"`
	NonceTTL                     *timex.Duration `json:"nonce_ttl"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	ArchiveInterval              *timex.Duration `json:"archive_interval"`
}

// parseJson overlays the file named by -c/-config onto config. Without the
// flag nothing happens. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setString(&config.ServiceToken, c.ServiceToken)
	if c.ChainID != nil {
		config.ChainID = *c.ChainID
	}
	setString(&config.RegistryAddress, c.RegistryAddress)
	setDuration(&config.NonceTTL, c.NonceTTL)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDuration(&config.ArchiveInterval, c.ArchiveInterval)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
