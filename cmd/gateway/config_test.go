package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway:\n  listen_addr: \":7000\"\n"), 0o600))

	cfg, err := parseGatewayConfig([]string{
		"--config", path,
		"--rpc-url", "wss://sepolia.example.org",
		"--allowed-origins", "https://a.example.com, https://b.example.com,",
		"--confirm-timeout", "5m",
	})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Gateway.ListenAddr)
	assert.Equal(t, "wss://sepolia.example.org", cfg.Chain.RPCURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Gateway.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Gateway.ConfirmTimeout)

	cfg, err = parseGatewayConfig([]string{"--config", path, "--addr", ":8000"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Gateway.ListenAddr)
}

func TestInvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain:\n  contract_address: nope\n"), 0o600))

	_, err := parseGatewayConfig([]string{"--config", path})
	assert.Error(t, err)

	_, err = parseGatewayConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
