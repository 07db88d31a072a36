package config

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/petguard/internal/flagx"
)

func parseEnv(cfg *Config) {
	if err := flagx.LoadEnvFile(); err != nil {
		panic(err)
	}

	if v, ok := flagx.LookupEnv("LEDGER_ADDR"); ok {
		cfg.LedgerAddr = v
	}
	if v, ok := flagx.LookupEnv("KMS_URL"); ok {
		cfg.KMSURL = v
	}
	if v, ok := flagx.LookupEnv("KEYSTORE"); ok {
		cfg.KeystorePath = v
	}
	if v, ok := flagx.LookupEnv("DECRYPT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.DecryptTimeout = d
	}
	if v, ok := flagx.LookupEnv("DECRYPT_RETRIES"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.DecryptRetries = n
	}
}
