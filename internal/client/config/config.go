package config

import (
	"time"

	"github.com/dmitrijs2005/petguard/internal/authz"
)

// Config holds runtime settings for the PetGuard CLI.
type Config struct {
	LedgerAddr          string
	KMSURL              string
	KeystorePath        string
	OnlineCheckInterval time.Duration
	DecryptTimeout      time.Duration
	DecryptRetries      uint64
	DurationDays        uint64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LedgerAddr = "127.0.0.1:50051"
	c.KMSURL = "http://127.0.0.1:8080"
	c.KeystorePath = "petguard-key.json"
	c.OnlineCheckInterval = 3 * time.Second
	c.DecryptTimeout = 30 * time.Second
	c.DecryptRetries = 3
	c.DurationDays = authz.DefaultDurationDays
}

// LoadConfig constructs a Config, applies defaults, then overlays JSON,
// environment and flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
