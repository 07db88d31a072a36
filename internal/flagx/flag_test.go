package flagx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-c", "-d", "dsn"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-a", "x", "-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"ledger", "-a", ":50051"}
	assert.Empty(t, JsonConfigFlags())

	os.Args = []string{"ledger", "-c", "ledger.json"}
	assert.Equal(t, "ledger.json", JsonConfigFlags())

	os.Args = []string{"ledger", "-c", "/path/1.json", "-config", "/path/2.json"}
	assert.Equal(t, "/path/2.json", JsonConfigFlags())
}

func TestLoadEnvFile(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	path := filepath.Join(t.TempDir(), "ledger.env")
	require.NoError(t, os.WriteFile(path, []byte("PETGUARD_TEST_ONLY_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PETGUARD_TEST_ONLY_VAR") })

	os.Args = []string{"ledger", "-env", path}
	require.NoError(t, LoadEnvFile())

	v, ok := LookupEnv("TEST_ONLY_VAR")
	require.True(t, ok)
	assert.Equal(t, "from-file", v)
}

func TestLoadEnvFile_NoFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"ledger"}
	assert.NoError(t, LoadEnvFile())
}
