package config

import "time"

// Sepolia deployment of the AssetTracker contract the dashboard was built against.
const (
	DefaultChainID         = 11155111
	DefaultContractAddress = "0x52fdfC63e202c1A337444E49B76c436A8A6C05C5"
	DefaultAdminAddress    = "0x687D70b3E77889689951208F2DB2B2B4927DBf05"
)

// Config represents the configuration shared by the gateway and the CLI
type Config struct {
	Chain   ChainConfig   `yaml:"chain"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Gateway GatewayConfig `yaml:"gateway"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChainConfig identifies the network and the deployed contract
type ChainConfig struct {
	RPCURL          string `yaml:"rpc_url"`          // JSON-RPC endpoint (http, https, ws, wss or ipc path)
	ChainID         int64  `yaml:"chain_id"`         // Expected chain id; the wallet must be on this chain
	ContractAddress string `yaml:"contract_address"` // Deployed AssetTracker contract
	AdminAddress    string `yaml:"admin_address"`    // The single account allowed to manage users
}

// WalletConfig contains the keystore-backed wallet settings
type WalletConfig struct {
	KeystoreDir    string `yaml:"keystore_dir"`    // go-ethereum keystore directory
	Account        string `yaml:"account"`         // Account to connect; first keystore account if empty
	PassphraseFile string `yaml:"passphrase_file"` // Unattended unlock; prompts when empty
}

// GatewayConfig contains the dashboard HTTP server settings
type GatewayConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`    // Bound on view calls issued by a request
	ConfirmTimeout time.Duration `yaml:"confirm_timeout"` // Bound on submit + confirmation of a write
	AllowedOrigins []string      `yaml:"allowed_origins"` // Cross-origin callers; empty means same-origin only, "*" allows any
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	OutputFile string `yaml:"output_file"` // Empty for stdout
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Chain: ChainConfig{
			RPCURL:          "http://localhost:8545",
			ChainID:         DefaultChainID,
			ContractAddress: DefaultContractAddress,
			AdminAddress:    DefaultAdminAddress,
		},
		Wallet: WalletConfig{
			KeystoreDir: "~/.tracker/keystore",
		},
		Gateway: GatewayConfig{
			ListenAddr:     "127.0.0.1:6100",
			ReadTimeout:    30 * time.Second,
			ConfirmTimeout: 3 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
