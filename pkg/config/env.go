package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables that override file values
const (
	EnvRPCURL          = "TRACKER_RPC_URL"
	EnvChainID         = "TRACKER_CHAIN_ID"
	EnvContractAddress = "TRACKER_CONTRACT_ADDRESS"
	EnvAdminAddress    = "TRACKER_ADMIN_ADDRESS"
	EnvKeystoreDir     = "TRACKER_KEYSTORE_DIR"
	EnvAccount         = "TRACKER_ACCOUNT"
	EnvPassphraseFile  = "TRACKER_PASSPHRASE_FILE"
	EnvListenAddr      = "TRACKER_LISTEN_ADDR"
	EnvConfirmTimeout  = "TRACKER_CONFIRM_TIMEOUT"
	EnvLogLevel        = "TRACKER_LOG_LEVEL"
)

func getEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// ApplyEnv overlays TRACKER_* environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	if v, ok := getEnv(EnvRPCURL); ok {
		cfg.Chain.RPCURL = v
	}
	if v, ok := getEnv(EnvChainID); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid chain id %q: %w", EnvChainID, v, err)
		}
		cfg.Chain.ChainID = id
	}
	if v, ok := getEnv(EnvContractAddress); ok {
		cfg.Chain.ContractAddress = v
	}
	if v, ok := getEnv(EnvAdminAddress); ok {
		cfg.Chain.AdminAddress = v
	}
	if v, ok := getEnv(EnvKeystoreDir); ok {
		cfg.Wallet.KeystoreDir = v
	}
	if v, ok := getEnv(EnvAccount); ok {
		cfg.Wallet.Account = v
	}
	if v, ok := getEnv(EnvPassphraseFile); ok {
		cfg.Wallet.PassphraseFile = v
	}
	if v, ok := getEnv(EnvListenAddr); ok {
		cfg.Gateway.ListenAddr = v
	}
	if v, ok := getEnv(EnvConfirmTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", EnvConfirmTimeout, v, err)
		}
		cfg.Gateway.ConfirmTimeout = d
	}
	if v, ok := getEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	return nil
}
