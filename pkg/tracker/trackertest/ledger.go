// Package trackertest provides in-memory doubles of the contract and the wallet for tests
// of packages built on the tracker adapter.
package trackertest

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract is the address transactions from the Ledger are sent to.
var Contract = common.HexToAddress("0x52fdfC63e202c1A337444E49B76c436A8A6C05C5")

type asset struct {
	id  uint64
	rec contracts.AssetRecord
}

type user struct {
	id      uint64
	address common.Address
	name    string
	added   uint64
}

// Ledger simulates the deployed contract. Mutations are queued at submission and applied
// when WaitMined confirms them, so a reverted or unconfirmed transaction changes nothing.
type Ledger struct {
	mu sync.Mutex

	// Sender plays msg.sender for submitted transactions.
	Sender common.Address
	// Now supplies block timestamps.
	Now func() time.Time

	// RevertNext makes the next confirmed transaction fail with receipt status 0.
	RevertNext bool
	// HoldReceipts makes WaitMined block until its context ends.
	HoldReceipts bool
	// SubmitErr is returned by the next submission.
	SubmitErr error
	// ReadErr is returned by every view call while set.
	ReadErr error
	// AssetColumns and UserColumns override the bulk views when set.
	AssetColumns *contracts.AssetColumns
	UserColumns  *contracts.UserColumns

	assets     []asset
	users      []user
	authorized map[common.Address]bool
	pending    map[common.Hash]func(now uint64)
	nonce      uint64
	block      uint64

	Submissions int
	Reads       int
}

var _ contracts.AssetLedger = (*Ledger)(nil)

// NewLedger returns an empty ledger that signs as sender.
func NewLedger(sender common.Address) *Ledger {
	return &Ledger{
		Sender:     sender,
		Now:        time.Now,
		authorized: make(map[common.Address]bool),
		pending:    make(map[common.Hash]func(uint64)),
		block:      100,
	}
}

// SeedAsset stores an asset directly and returns its id.
func (l *Ledger) SeedAsset(rec contracts.AssetRecord) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := uint64(len(l.assets) + 1)
	if rec.LastUpdated == nil {
		rec.LastUpdated = big.NewInt(l.Now().Unix())
	}
	l.assets = append(l.assets, asset{id: id, rec: rec})
	return id
}

// SeedUser authorizes a user directly.
func (l *Ledger) SeedUser(address common.Address, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.authorize(address, name, uint64(l.Now().Unix()))
}

func (l *Ledger) authorize(address common.Address, name string, now uint64) {
	for i := range l.users {
		if l.users[i].address == address {
			l.users[i].name = name
			l.authorized[address] = true
			return
		}
	}
	l.users = append(l.users, user{id: uint64(len(l.users) + 1), address: address, name: name, added: now})
	l.authorized[address] = true
}

func (l *Ledger) read() error {
	l.Reads++
	return l.ReadErr
}

// GetAllAssetDetails implements contracts.AssetLedger.
func (l *Ledger) GetAllAssetDetails(ctx context.Context) (*contracts.AssetColumns, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(); err != nil {
		return nil, err
	}
	if l.AssetColumns != nil {
		return l.AssetColumns, nil
	}
	cols := &contracts.AssetColumns{}
	for _, a := range l.assets {
		cols.IDs = append(cols.IDs, new(big.Int).SetUint64(a.id))
		cols.Senders = append(cols.Senders, a.rec.Sender)
		cols.Recipients = append(cols.Recipients, a.rec.Recipient)
		cols.Names = append(cols.Names, a.rec.Name)
		cols.Types = append(cols.Types, a.rec.Type)
		cols.Locations = append(cols.Locations, a.rec.Location)
		cols.Statuses = append(cols.Statuses, a.rec.Status)
		cols.Distances = append(cols.Distances, a.rec.Distance)
	}
	return cols, nil
}

// GetAssetSpecificDetails implements contracts.AssetLedger. Unknown ids return a zero record.
func (l *Ledger) GetAssetSpecificDetails(ctx context.Context, id *big.Int) (*contracts.AssetRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(); err != nil {
		return nil, err
	}
	for _, a := range l.assets {
		if new(big.Int).SetUint64(a.id).Cmp(id) == 0 {
			rec := a.rec
			rec.Trailing = big.NewInt(0)
			return &rec, nil
		}
	}
	return &contracts.AssetRecord{LastUpdated: big.NewInt(0), Trailing: big.NewInt(0)}, nil
}

// GetAllUserDetails implements contracts.AssetLedger. Revoked slots keep their place with a
// zero address and an empty name.
func (l *Ledger) GetAllUserDetails(ctx context.Context) (*contracts.UserColumns, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(); err != nil {
		return nil, err
	}
	if l.UserColumns != nil {
		return l.UserColumns, nil
	}
	cols := &contracts.UserColumns{}
	for _, u := range l.users {
		cols.IDs = append(cols.IDs, new(big.Int).SetUint64(u.id))
		cols.Addresses = append(cols.Addresses, u.address)
		cols.Names = append(cols.Names, u.name)
		cols.Timestamps = append(cols.Timestamps, new(big.Int).SetUint64(u.added))
	}
	return cols, nil
}

// AuthorizedUser implements contracts.AssetLedger.
func (l *Ledger) AuthorizedUser(ctx context.Context, account common.Address) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.read(); err != nil {
		return false, err
	}
	return l.authorized[account], nil
}

func (l *Ledger) submit(method string, apply func(now uint64)) (*types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.SubmitErr; err != nil {
		l.SubmitErr = nil
		return nil, trackererrors.NewTxRejectedError(method, err)
	}
	l.Submissions++
	l.nonce++
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    l.nonce,
		To:       &Contract,
		Gas:      100000,
		GasPrice: big.NewInt(1),
		Data:     []byte(method),
	})
	l.pending[tx.Hash()] = apply
	return tx, nil
}

// CreateAssetTracking implements contracts.AssetLedger.
func (l *Ledger) CreateAssetTracking(ctx context.Context, recipient common.Address, recipientName, name, description, assetType, location, status, distance string) (*types.Transaction, error) {
	sender := l.Sender
	return l.submit("createAssetTracking", func(now uint64) {
		l.assets = append(l.assets, asset{
			id: uint64(len(l.assets) + 1),
			rec: contracts.AssetRecord{
				Sender:        sender,
				Recipient:     recipient,
				RecipientName: recipientName,
				Name:          name,
				Description:   description,
				Type:          assetType,
				Location:      location,
				Status:        status,
				Distance:      distance,
				LastUpdated:   new(big.Int).SetUint64(now),
			},
		})
	})
}

func (l *Ledger) mutateAsset(id *big.Int, now uint64, fn func(*contracts.AssetRecord)) {
	for i := range l.assets {
		if new(big.Int).SetUint64(l.assets[i].id).Cmp(id) == 0 {
			fn(&l.assets[i].rec)
			l.assets[i].rec.LastUpdated = new(big.Int).SetUint64(now)
			return
		}
	}
}

// UpdateAssetStatus implements contracts.AssetLedger.
func (l *Ledger) UpdateAssetStatus(ctx context.Context, id *big.Int, status string) (*types.Transaction, error) {
	return l.submit("updateAssetStatus", func(now uint64) {
		l.mutateAsset(id, now, func(r *contracts.AssetRecord) { r.Status = status })
	})
}

// TransferAssetTrackingOwnership implements contracts.AssetLedger.
func (l *Ledger) TransferAssetTrackingOwnership(ctx context.Context, id *big.Int, newRecipient common.Address, newRecipientName string) (*types.Transaction, error) {
	return l.submit("transferAssetTrackingOwnership", func(now uint64) {
		l.mutateAsset(id, now, func(r *contracts.AssetRecord) {
			r.Recipient = newRecipient
			r.RecipientName = newRecipientName
		})
	})
}

// AuthorizeAndCreateNewUser implements contracts.AssetLedger.
func (l *Ledger) AuthorizeAndCreateNewUser(ctx context.Context, account common.Address, name string) (*types.Transaction, error) {
	return l.submit("authorizeAndCreateNewUser", func(now uint64) {
		l.authorize(account, name, now)
	})
}

// RevokeUserAuth implements contracts.AssetLedger.
func (l *Ledger) RevokeUserAuth(ctx context.Context, account common.Address) (*types.Transaction, error) {
	return l.submit("revokeUserAuth", func(now uint64) {
		for i := range l.users {
			if l.users[i].address == account {
				l.users[i].address = common.Address{}
				l.users[i].name = ""
			}
		}
		l.authorized[account] = false
	})
}

// WaitMined implements contracts.AssetLedger.
func (l *Ledger) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	l.mu.Lock()
	hold := l.HoldReceipts
	l.mu.Unlock()
	if hold {
		<-ctx.Done()
		return nil, trackererrors.NewTimeoutError("confirmation", "").WithTx(tx.Hash().Hex())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	apply, ok := l.pending[tx.Hash()]
	if !ok {
		return nil, trackererrors.NewNetworkError("unknown transaction "+tx.Hash().Hex(), nil)
	}
	delete(l.pending, tx.Hash())
	l.block++

	receipt := &types.Receipt{
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(l.block),
		GasUsed:     21000,
		Status:      types.ReceiptStatusSuccessful,
	}
	if l.RevertNext {
		l.RevertNext = false
		receipt.Status = types.ReceiptStatusFailed
		return receipt, nil
	}
	apply(uint64(l.Now().Unix()))
	return receipt, nil
}
