package config

import (
	"github.com/DeBrosOfficial/assettracker/pkg/config/validate"
)

// ValidationError is re-exported for callers that inspect individual problems.
type ValidationError = validate.ValidationError

// Validate performs validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, validate.ValidateChain(validate.ChainConfig{
		RPCURL:          c.Chain.RPCURL,
		ChainID:         c.Chain.ChainID,
		ContractAddress: c.Chain.ContractAddress,
		AdminAddress:    c.Chain.AdminAddress,
	})...)

	keystoreDir, err := ExpandPath(c.Wallet.KeystoreDir)
	if err != nil {
		errs = append(errs, ValidationError{Path: "wallet.keystore_dir", Message: err.Error()})
	}
	passphraseFile, err := ExpandPath(c.Wallet.PassphraseFile)
	if err != nil {
		errs = append(errs, ValidationError{Path: "wallet.passphrase_file", Message: err.Error()})
	}
	errs = append(errs, validate.ValidateWallet(validate.WalletConfig{
		KeystoreDir:    keystoreDir,
		Account:        c.Wallet.Account,
		PassphraseFile: passphraseFile,
	})...)

	errs = append(errs, validate.ValidateGateway(validate.GatewayConfig{
		ListenAddr:     c.Gateway.ListenAddr,
		ReadTimeout:    c.Gateway.ReadTimeout,
		ConfirmTimeout: c.Gateway.ConfirmTimeout,
		AllowedOrigins: c.Gateway.AllowedOrigins,
	})...)

	errs = append(errs, validate.ValidateLogging(validate.LoggingConfig{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		OutputFile: c.Logging.OutputFile,
	})...)

	return errs
}
