// Package config handles configuration for the decryption authority.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/flagx"
	"github.com/dmitrijs2005/petguard/internal/timex"
)

// Config holds runtime settings for the KMS.
//
// NetworkKeyFile is required on production networks only; the mock
// network decrypts without a key.
type Config struct {
	EndpointAddrHTTP string
	LedgerAddr       string
	ServiceToken     string
	ChainID          uint64
	NetworkKeyFile   string
	LedgerTimeout    time.Duration
}

func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.LedgerAddr = "localhost:50051"
	c.ServiceToken = "serviceToken"
	c.ChainID = fhe.HardhatChainID
	c.NetworkKeyFile = ""
	c.LedgerTimeout = 5 * time.Second
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	LedgerAddr       *string         `json:"ledger_addr"`
	ServiceToken     *string         `json:"service_token"`
	ChainID          *uint64         `json:"chain_id"`
	NetworkKeyFile   *string         `json:"network_key_file"`
	LedgerTimeout    *timex.Duration `json:"ledger_timeout"`
}

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

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.LedgerAddr != nil {
		config.LedgerAddr = *c.LedgerAddr
	}
	if c.ServiceToken != nil {
		config.ServiceToken = *c.ServiceToken
	}
	if c.ChainID != nil {
		config.ChainID = *c.ChainID
	}
	if c.NetworkKeyFile != nil {
		config.NetworkKeyFile = *c.NetworkKeyFile
	}
	if c.LedgerTimeout != nil {
		config.LedgerTimeout = c.LedgerTimeout.Duration
	}
}
