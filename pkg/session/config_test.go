package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`
fuel: 500
trace: false
timeout: 2s
prelude: false
workers: 3
`))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Checker.Fuel)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.False(t, cfg.Prelude)
	assert.Equal(t, 3, cfg.Workers)
}

func TestDecodeConfig_partialKeepsDefaults(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader("fuel: 0\n"))
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, 0, cfg.Checker.Fuel)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, def.Workers, cfg.Workers)
}

func TestDecodeConfig_empty(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfig_rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "fule: 10\n",
		"negative fuel":    "fuel: -1\n",
		"zero workers":     "workers: 0\n",
		"negative timeout": "timeout: -1s\n",
		"bad duration":     "timeout: soon\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("fuel: 42\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Checker.Fuel)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestConfig_marshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Checker.Fuel = 7
	cfg.Timeout = 1500 * time.Millisecond
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 1.5s")

	back, err := DecodeConfig(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
