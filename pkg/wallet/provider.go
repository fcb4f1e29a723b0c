// Package wallet resolves the active account and a signer for it from a wallet provider.
package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Provider is the wallet boundary: the only channel for identity and transaction signing.
type Provider interface {
	// Accounts returns the accounts already connected. It never prompts.
	Accounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts runs the interactive connection flow and may prompt the holder.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// ChainID returns the chain the provider signs for.
	ChainID(ctx context.Context) (*big.Int, error)
	// Signer returns a transactor bound to a connected account.
	Signer(ctx context.Context, account common.Address, chainID *big.Int) (*bind.TransactOpts, error)
	// SubscribeAccountsChanged delivers the full account list whenever it changes.
	// An empty list means the wallet disconnected.
	SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription
}

// Disconnector is implemented by providers that can drop their connected accounts.
type Disconnector interface {
	Disconnect()
}

// ChainIDReader reports the chain id of a node. *ethclient.Client satisfies it.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}
