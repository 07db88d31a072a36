package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.LedgerAddr)
	assert.Equal(t, "http://127.0.0.1:8080", c.KMSURL)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, uint64(10), c.DurationDays)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.LedgerAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_EnvBeforeFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client", "-a", "flag:1"}
	t.Setenv("PETGUARD_LEDGER_ADDR", "env:1")
	t.Setenv("PETGUARD_KMS_URL", "http://env-kms")
	t.Setenv("PETGUARD_DECRYPT_RETRIES", "7")

	cfg := LoadConfig()

	assert.Equal(t, "flag:1", cfg.LedgerAddr)
	assert.Equal(t, "http://env-kms", cfg.KMSURL)
	assert.Equal(t, uint64(7), cfg.DecryptRetries)
}

func TestParseEnv_MalformedPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client"}
	t.Setenv("PETGUARD_DECRYPT_RETRIES", "many")

	assert.Panics(t, func() { parseEnv(&Config{}) })
}
