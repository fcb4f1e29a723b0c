package wallet

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

var (
	_ contracts.SignerSource  = (*Resolver)(nil)
	_ contracts.AccountSource = (*Resolver)(nil)
)

// AccountChange is published to dependents whenever the active account changes.
type AccountChange struct {
	Account   common.Address `json:"account"`
	Connected bool           `json:"connected"`
}

// Resolver owns the single wallet handle of the process. It is passed explicitly to every
// dependent. A nil provider means no wallet is installed.
type Resolver struct {
	provider Provider
	chainID  *big.Int
	logger   *logging.ColoredLogger

	mu        sync.RWMutex
	account   common.Address
	connected bool

	feed    event.Feed
	sub     event.Subscription
	changes chan []common.Address
	done    chan struct{}
}

// NewResolver creates a resolver that expects the provider to be on chainID.
func NewResolver(provider Provider, chainID *big.Int, logger *logging.ColoredLogger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{
		provider: provider,
		chainID:  new(big.Int).Set(chainID),
		logger:   logger,
	}
}

// HasProvider reports whether a wallet provider is installed.
func (r *Resolver) HasProvider() bool {
	return r.provider != nil
}

// ChainID returns the expected chain id.
func (r *Resolver) ChainID() *big.Int {
	return new(big.Int).Set(r.chainID)
}

// Current returns the last known active account without touching the provider.
func (r *Resolver) Current() (common.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.account, r.connected
}

// ActiveAccount returns the first account reported by the provider's read-only query.
// It reports none when the provider is absent or nothing is connected.
func (r *Resolver) ActiveAccount(ctx context.Context) (common.Address, bool, error) {
	if r.provider == nil {
		return common.Address{}, false, nil
	}
	accounts, err := r.provider.Accounts(ctx)
	if err != nil {
		return common.Address{}, false, trackererrors.NewNetworkError("failed to read wallet accounts", err)
	}
	r.setAccounts(accounts)
	if len(accounts) == 0 {
		return common.Address{}, false, nil
	}
	return accounts[0], true, nil
}

// RequestConnection runs the provider's interactive flow and returns the first authorized account.
func (r *Resolver) RequestConnection(ctx context.Context) (common.Address, error) {
	if r.provider == nil {
		return common.Address{}, trackererrors.NewNoProviderError("install or configure a wallet")
	}
	accounts, err := r.provider.RequestAccounts(ctx)
	if err != nil {
		var connErr *trackererrors.ConnectivityError
		switch {
		case errors.As(err, &connErr):
			return common.Address{}, err
		case errors.Is(err, trackererrors.ErrUserRejected):
			return common.Address{}, trackererrors.NewUserRejectedError(err)
		case errors.Is(err, trackererrors.ErrNoProvider):
			return common.Address{}, trackererrors.NewNoProviderError(err.Error())
		default:
			return common.Address{}, trackererrors.NewNetworkError("wallet connection request failed", err)
		}
	}
	if len(accounts) == 0 {
		return common.Address{}, trackererrors.NewUserRejectedError(nil)
	}
	r.setAccounts(accounts)
	r.logger.ComponentInfo(logging.ComponentWallet, "Wallet connected", zap.String("account", accounts[0].Hex()))
	return accounts[0], nil
}

// Disconnect drops the connection and marks every dependent unauthenticated.
func (r *Resolver) Disconnect() {
	if d, ok := r.provider.(Disconnector); ok {
		d.Disconnect()
	}
	r.setAccounts(nil)
}

// EnsureChain fails with a chain mismatch when the provider signs for another chain.
func (r *Resolver) EnsureChain(ctx context.Context) error {
	if r.provider == nil {
		return trackererrors.NewNoProviderError("")
	}
	id, err := r.provider.ChainID(ctx)
	if err != nil {
		return trackererrors.NewNetworkError("failed to read chain id", err)
	}
	if id.Cmp(r.chainID) != 0 {
		return trackererrors.NewChainMismatchError(r.chainID.String(), id.String())
	}
	return nil
}

// Signer returns a transactor for the active account. Without a connected account it fails
// with NotConnected before any request reaches the provider or the network.
func (r *Resolver) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	account, ok := r.Current()
	if !ok || r.provider == nil {
		return nil, trackererrors.NewNotConnectedError()
	}
	if err := r.EnsureChain(ctx); err != nil {
		return nil, err
	}
	opts, err := r.provider.Signer(ctx, account, r.chainID)
	if err != nil {
		var connErr *trackererrors.ConnectivityError
		if errors.As(err, &connErr) {
			return nil, err
		}
		return nil, trackererrors.NewNotConnectedError()
	}
	opts.Context = ctx
	return opts, nil
}

// CallOpts returns view-call options for the active account, failing fast like Signer.
func (r *Resolver) CallOpts(ctx context.Context) (*bind.CallOpts, error) {
	account, ok := r.Current()
	if !ok || r.provider == nil {
		return nil, trackererrors.NewNotConnectedError()
	}
	if err := r.EnsureChain(ctx); err != nil {
		return nil, err
	}
	return &bind.CallOpts{From: account, Context: ctx}, nil
}

// SubscribeAccountChange registers ch for account changes.
func (r *Resolver) SubscribeAccountChange(ch chan<- AccountChange) event.Subscription {
	return r.feed.Subscribe(ch)
}

// Start forwards provider account notifications to subscribers until Close.
func (r *Resolver) Start() {
	if r.provider == nil || r.sub != nil {
		return
	}
	r.changes = make(chan []common.Address, 16)
	r.done = make(chan struct{})
	r.sub = r.provider.SubscribeAccountsChanged(r.changes)
	go r.loop()
}

func (r *Resolver) loop() {
	defer close(r.done)
	for {
		select {
		case accounts := <-r.changes:
			r.setAccounts(accounts)
		case err, ok := <-r.sub.Err():
			if ok && err != nil {
				r.logger.ComponentWarn(logging.ComponentWallet, "Account subscription ended", zap.Error(err))
			}
			return
		}
	}
}

// Close stops forwarding.
func (r *Resolver) Close() {
	if r.sub == nil {
		return
	}
	r.sub.Unsubscribe()
	<-r.done
	r.sub = nil
}

// setAccounts records the latest account list; the last notification wins.
func (r *Resolver) setAccounts(accounts []common.Address) {
	change := AccountChange{}
	if len(accounts) > 0 {
		change = AccountChange{Account: accounts[0], Connected: true}
	}

	r.mu.Lock()
	changed := change != AccountChange{Account: r.account, Connected: r.connected}
	r.account, r.connected = change.Account, change.Connected
	r.mu.Unlock()

	if !changed {
		return
	}
	if change.Connected {
		r.logger.ComponentInfo(logging.ComponentWallet, "Active account changed", zap.String("account", change.Account.Hex()))
	} else {
		r.logger.ComponentInfo(logging.ComponentWallet, "Wallet disconnected")
	}
	r.feed.Send(change)
}
