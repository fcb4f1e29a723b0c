package trackertest

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Accounts is a settable active account.
type Accounts struct {
	mu        sync.Mutex
	account   common.Address
	connected bool
}

// NewAccounts returns a source with account connected.
func NewAccounts(account common.Address) *Accounts {
	return &Accounts{account: account, connected: true}
}

// Set connects account.
func (a *Accounts) Set(account common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.account, a.connected = account, true
}

// Clear disconnects.
func (a *Accounts) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.account, a.connected = common.Address{}, false
}

// ActiveAccount implements contracts.AccountSource.
func (a *Accounts) ActiveAccount(ctx context.Context) (common.Address, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.account, a.connected, nil
}
