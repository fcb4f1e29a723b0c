package client

import (
	"github.com/DeBrosOfficial/assettracker/pkg/config"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
)

// ClientConfig represents configuration for tracker clients
type ClientConfig struct {
	Chain  config.ChainConfig
	Wallet config.WalletConfig

	// Prompt is tried after the request context and the passphrase file.
	Prompt wallet.PassphraseFunc

	// SkipDeployCheck skips the startup check that code exists at the contract address.
	SkipDeployCheck bool

	Logger *logging.ColoredLogger
}

// ClientConfigFrom builds a client config from the shared configuration file.
func ClientConfigFrom(cfg *config.Config, logger *logging.ColoredLogger) *ClientConfig {
	return &ClientConfig{
		Chain:  cfg.Chain,
		Wallet: cfg.Wallet,
		Logger: logger,
	}
}
