package config

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/petguard/internal/flagx"
)

// parseEnv reads PETGUARD_* variables. SERVICE_TOKEN and CHAIN_ID are
// shared with the ledger node on purpose.
func parseEnv(config *Config) {
	if err := flagx.LoadEnvFile(); err != nil {
		panic(err)
	}

	if v, ok := flagx.LookupEnv("KMS_HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := flagx.LookupEnv("LEDGER_ADDR"); ok {
		config.LedgerAddr = v
	}
	if v, ok := flagx.LookupEnv("SERVICE_TOKEN"); ok {
		config.ServiceToken = v
	}
	if v, ok := flagx.LookupEnv("CHAIN_ID"); ok {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			panic(err)
		}
		config.ChainID = id
	}
	if v, ok := flagx.LookupEnv("NETWORK_KEY_FILE"); ok {
		config.NetworkKeyFile = v
	}
	if v, ok := flagx.LookupEnv("LEDGER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.LedgerTimeout = d
	}
}
