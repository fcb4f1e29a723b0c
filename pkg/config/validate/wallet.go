package validate

import "os"

// WalletConfig represents the wallet configuration for validation purposes.
// Paths must already be expanded.
type WalletConfig struct {
	KeystoreDir    string
	Account        string
	PassphraseFile string
}

// ValidateWallet validates the keystore settings. A missing keystore directory is not an
// error here: the resolver reports it as "no provider" so the UI can ask for a wallet.
func ValidateWallet(w WalletConfig) []error {
	var errs []error

	if w.KeystoreDir == "" {
		errs = append(errs, ValidationError{
			Path:    "wallet.keystore_dir",
			Message: "must not be empty",
		})
	} else if info, err := os.Stat(w.KeystoreDir); err == nil && !info.IsDir() {
		errs = append(errs, ValidationError{
			Path:    "wallet.keystore_dir",
			Message: "path exists but is not a directory",
		})
	}

	if w.Account != "" {
		if err := ValidateAddress(w.Account); err != nil {
			errs = append(errs, ValidationError{
				Path:    "wallet.account",
				Message: err.Error(),
			})
		}
	}

	if w.PassphraseFile != "" {
		if err := ValidateFileReadable(w.PassphraseFile); err != nil {
			errs = append(errs, ValidationError{
				Path:    "wallet.passphrase_file",
				Message: err.Error(),
			})
		}
	}
	return errs
}
