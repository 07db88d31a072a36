package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/petguard/internal/flagx"
	"github.com/dmitrijs2005/petguard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep the value they had.
type JsonConfig struct {
	LedgerAddr          *string         `json:"ledger_addr"`
	KMSURL              *string         `json:"kms_url"`
	KeystorePath        *string         `json:"keystore_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DecryptTimeout      *timex.Duration `json:"decrypt_timeout"`
	DecryptRetries      *uint64         `json:"decrypt_retries"`
	DurationDays        *uint64         `json:"duration_days"`
}

// parseJson overlays Config with values loaded from the file named by
// -c/-config. Read or unmarshal errors panic.
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

	if jc.LedgerAddr != nil {
		cfg.LedgerAddr = *jc.LedgerAddr
	}
	if jc.KMSURL != nil {
		cfg.KMSURL = *jc.KMSURL
	}
	if jc.KeystorePath != nil {
		cfg.KeystorePath = *jc.KeystorePath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DecryptTimeout != nil {
		cfg.DecryptTimeout = jc.DecryptTimeout.Duration
	}
	if jc.DecryptRetries != nil {
		cfg.DecryptRetries = *jc.DecryptRetries
	}
	if jc.DurationDays != nil {
		cfg.DurationDays = *jc.DurationDays
	}
}
