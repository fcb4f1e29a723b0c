package contracts

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// SignerSource supplies options bound to the connected account. Both methods fail with a
// "not connected" error, without network access, when no account is connected.
type SignerSource interface {
	CallOpts(ctx context.Context) (*bind.CallOpts, error)
	Signer(ctx context.Context) (*bind.TransactOpts, error)
}

// AccountSource reports the active wallet account.
type AccountSource interface {
	// ActiveAccount returns the connected account, or false when there is none.
	ActiveAccount(ctx context.Context) (common.Address, bool, error)
}
