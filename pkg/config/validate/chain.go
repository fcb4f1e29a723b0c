package validate

import "fmt"

// ChainConfig represents the chain configuration for validation purposes.
type ChainConfig struct {
	RPCURL          string
	ChainID         int64
	ContractAddress string
	AdminAddress    string
}

// ValidateChain validates the network and contract identity settings.
func ValidateChain(c ChainConfig) []error {
	var errs []error

	if err := ValidateRPCURL(c.RPCURL); err != nil {
		errs = append(errs, ValidationError{
			Path:    "chain.rpc_url",
			Message: err.Error(),
			Hint:    "e.g. https://sepolia.example.org or /path/geth.ipc",
		})
	}
	if c.ChainID <= 0 {
		errs = append(errs, ValidationError{
			Path:    "chain.chain_id",
			Message: fmt.Sprintf("must be positive; got %d", c.ChainID),
		})
	}
	if err := ValidateAddress(c.ContractAddress); err != nil {
		errs = append(errs, ValidationError{
			Path:    "chain.contract_address",
			Message: err.Error(),
			Hint:    "expected 0x followed by 40 hex characters",
		})
	}
	if err := ValidateAddress(c.AdminAddress); err != nil {
		errs = append(errs, ValidationError{
			Path:    "chain.admin_address",
			Message: err.Error(),
			Hint:    "expected 0x followed by 40 hex characters",
		})
	}
	return errs
}
