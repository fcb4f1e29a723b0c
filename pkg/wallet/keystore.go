package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

// OpenKeystore opens an encrypted key directory with standard scrypt parameters.
// A missing directory means no wallet is installed.
func OpenKeystore(dir string) (*keystore.KeyStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, trackererrors.NewNoProviderError(fmt.Sprintf("keystore directory %s not found", dir))
		}
		return nil, fmt.Errorf("failed to open keystore %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, trackererrors.NewNoProviderError(fmt.Sprintf("%s is not a directory", dir))
	}
	return keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP), nil
}

// KeystoreOptions configures a KeystoreProvider.
type KeystoreOptions struct {
	// Account to connect; the first keystore account when zero.
	Account common.Address
	// Passphrase obtains the unlock passphrase during RequestAccounts.
	Passphrase PassphraseFunc
}

// KeystoreProvider is a Provider over a go-ethereum keystore. Connected accounts are the
// ones unlocked through RequestAccounts during this process.
type KeystoreProvider struct {
	ks     *keystore.KeyStore
	chain  ChainIDReader
	opts   KeystoreOptions
	logger *logging.ColoredLogger

	mu       sync.Mutex
	unlocked []common.Address
	feed     event.Feed

	walletSub event.Subscription
	walletCh  chan accounts.WalletEvent
	done      chan struct{}
}

// NewKeystoreProvider creates a provider over ks; chain answers ChainID.
func NewKeystoreProvider(ks *keystore.KeyStore, chain ChainIDReader, opts KeystoreOptions, logger *logging.ColoredLogger) *KeystoreProvider {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &KeystoreProvider{ks: ks, chain: chain, opts: opts, logger: logger}
}

// Accounts returns the unlocked accounts, most recently connected first.
func (p *KeystoreProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]common.Address(nil), p.unlocked...), nil
}

// RequestAccounts unlocks the configured account with a passphrase from the PassphraseFunc.
// An empty or wrong passphrase counts as a rejected request.
func (p *KeystoreProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	account, err := p.selectAccount()
	if err != nil {
		return nil, err
	}
	if p.opts.Passphrase == nil {
		return nil, trackererrors.NewUserRejectedError(nil)
	}

	passphrase, err := p.opts.Passphrase(ctx, account)
	if err != nil {
		return nil, trackererrors.NewUserRejectedError(err)
	}
	if passphrase == "" {
		return nil, trackererrors.NewUserRejectedError(nil)
	}
	if err := p.ks.Unlock(account, passphrase); err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			p.logger.ComponentWarn(logging.ComponentWallet, "Keystore unlock refused", zap.String("account", account.Address.Hex()))
			return nil, trackererrors.NewUserRejectedError(err)
		}
		return nil, fmt.Errorf("failed to unlock %s: %w", account.Address.Hex(), err)
	}

	p.mu.Lock()
	list := []common.Address{account.Address}
	for _, a := range p.unlocked {
		if a != account.Address {
			list = append(list, a)
		}
	}
	p.unlocked = list
	out := append([]common.Address(nil), list...)
	p.mu.Unlock()

	p.logger.ComponentDebug(logging.ComponentWallet, "Keystore account unlocked", zap.String("account", account.Address.Hex()))
	return out, nil
}

func (p *KeystoreProvider) selectAccount() (accounts.Account, error) {
	if p.opts.Account != (common.Address{}) {
		account, err := p.ks.Find(accounts.Account{Address: p.opts.Account})
		if err != nil {
			return accounts.Account{}, trackererrors.NewNoProviderError(fmt.Sprintf("account %s not in keystore", p.opts.Account.Hex()))
		}
		return account, nil
	}
	all := p.ks.Accounts()
	if len(all) == 0 {
		return accounts.Account{}, trackererrors.NewNoProviderError("keystore has no accounts")
	}
	return all[0], nil
}

// ChainID asks the connected node.
func (p *KeystoreProvider) ChainID(ctx context.Context) (*big.Int, error) {
	if p.chain == nil {
		return nil, trackererrors.NewNetworkError("no chain client", nil)
	}
	return p.chain.ChainID(ctx)
}

// Signer returns a keystore transactor for an unlocked account.
func (p *KeystoreProvider) Signer(ctx context.Context, account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	if !p.isUnlocked(account) {
		return nil, trackererrors.NewNotConnectedError()
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, accounts.Account{Address: account}, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

func (p *KeystoreProvider) isUnlocked(account common.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.unlocked {
		if a == account {
			return true
		}
	}
	return false
}

// SubscribeAccountsChanged delivers the account list after a disconnect or a dropped key file.
func (p *KeystoreProvider) SubscribeAccountsChanged(ch chan<- []common.Address) event.Subscription {
	return p.feed.Subscribe(ch)
}

// Disconnect locks every unlocked account.
func (p *KeystoreProvider) Disconnect() {
	p.mu.Lock()
	for _, a := range p.unlocked {
		_ = p.ks.Lock(a)
	}
	had := len(p.unlocked) > 0
	p.unlocked = nil
	p.mu.Unlock()

	if had {
		p.feed.Send([]common.Address{})
	}
}

// Start watches the keystore for removed key files until Close.
func (p *KeystoreProvider) Start() {
	if p.walletSub != nil {
		return
	}
	p.walletCh = make(chan accounts.WalletEvent, 8)
	p.done = make(chan struct{})
	p.walletSub = p.ks.Subscribe(p.walletCh)
	go p.watch()
}

func (p *KeystoreProvider) watch() {
	defer close(p.done)
	for {
		select {
		case ev := <-p.walletCh:
			if ev.Kind != accounts.WalletDropped {
				continue
			}
			for _, a := range ev.Wallet.Accounts() {
				p.drop(a.Address)
			}
		case <-p.walletSub.Err():
			return
		}
	}
}

func (p *KeystoreProvider) drop(addr common.Address) {
	p.mu.Lock()
	kept := p.unlocked[:0]
	dropped := false
	for _, a := range p.unlocked {
		if a == addr {
			dropped = true
			continue
		}
		kept = append(kept, a)
	}
	p.unlocked = kept
	out := append([]common.Address{}, kept...)
	p.mu.Unlock()

	if dropped {
		p.logger.ComponentWarn(logging.ComponentWallet, "Key file removed for connected account", zap.String("account", addr.Hex()))
		p.feed.Send(out)
	}
}

// Close stops watching the keystore.
func (p *KeystoreProvider) Close() {
	if p.walletSub == nil {
		return
	}
	p.walletSub.Unsubscribe()
	<-p.done
	p.walletSub = nil
}
