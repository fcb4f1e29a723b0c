package binding

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Backend is what the binding needs from a node connection. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// AssetTracker is a typed proxy for every function of the contract. It adds no caching,
// retries or rate limiting.
type AssetTracker struct {
	address  common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
	backend  Backend
	signers  contracts.SignerSource
	logger   *logging.ColoredLogger
}

var _ contracts.AssetLedger = (*AssetTracker)(nil)

// NewAssetTracker binds the contract at address. Every call obtains its options from signers.
func NewAssetTracker(address common.Address, backend Backend, signers contracts.SignerSource, logger *logging.ColoredLogger) (*AssetTracker, error) {
	parsed, err := AssetTrackerMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AssetTracker{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
		backend:  backend,
		signers:  signers,
		logger:   logger,
	}, nil
}

// Address returns the bound contract address.
func (c *AssetTracker) Address() common.Address {
	return c.address
}

// ABI returns the parsed contract interface.
func (c *AssetTracker) ABI() *abi.ABI {
	return c.abi
}

// CheckDeployed verifies that code exists at the bound address.
func (c *AssetTracker) CheckDeployed(ctx context.Context) error {
	code, err := c.backend.CodeAt(ctx, c.address, nil)
	if err != nil {
		return trackererrors.NewNetworkError("failed to read contract code", err)
	}
	if len(code) == 0 {
		return trackererrors.NewNetworkError(fmt.Sprintf("contract not deployed at %s", c.address.Hex()), bind.ErrNoCode)
	}
	return nil
}

func (c *AssetTracker) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	opts, err := c.signers.CallOpts(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	var out []interface{}
	if err := c.contract.Call(opts, &out, method, params...); err != nil {
		return nil, c.callError(method, err)
	}
	c.logger.ComponentDebug(logging.ComponentContract, "View call",
		zap.String("method", method),
		zap.Duration("took", time.Since(start)))
	return out, nil
}

func (c *AssetTracker) transact(ctx context.Context, method string, params ...interface{}) (*types.Transaction, error) {
	opts, err := c.signers.Signer(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := c.contract.Transact(opts, method, params...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, trackererrors.NewTimeoutError(method, "")
		}
		return nil, trackererrors.NewTxRejectedError(method, err)
	}
	c.logger.ComponentInfo(logging.ComponentContract, "Transaction submitted",
		zap.String("method", method),
		zap.String("from", opts.From.Hex()),
		zap.String("tx", tx.Hash().Hex()))
	return tx, nil
}

func (c *AssetTracker) callError(method string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return trackererrors.NewTimeoutError(method, "")
	case errors.Is(err, bind.ErrNoCode):
		return trackererrors.NewNetworkError(fmt.Sprintf("contract not deployed at %s", c.address.Hex()), err)
	default:
		return trackererrors.NewNetworkError(fmt.Sprintf("%s call failed", method), err)
	}
}

// expect checks the output count so the typed conversions below cannot panic.
func expect(method string, out []interface{}, n int) error {
	if len(out) != n {
		return trackererrors.NewDecodeError(method, fmt.Sprintf("expected %d outputs, got %d", n, len(out)))
	}
	return nil
}

// GetAllAssetDetails calls getAllAssetDetails.
func (c *AssetTracker) GetAllAssetDetails(ctx context.Context) (*contracts.AssetColumns, error) {
	const method = "getAllAssetDetails"
	out, err := c.call(ctx, method)
	if err != nil {
		return nil, err
	}
	if err := expect(method, out, 8); err != nil {
		return nil, err
	}
	return &contracts.AssetColumns{
		IDs:        *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int),
		Senders:    *abi.ConvertType(out[1], new([]common.Address)).(*[]common.Address),
		Recipients: *abi.ConvertType(out[2], new([]common.Address)).(*[]common.Address),
		Names:      *abi.ConvertType(out[3], new([]string)).(*[]string),
		Types:      *abi.ConvertType(out[4], new([]string)).(*[]string),
		Locations:  *abi.ConvertType(out[5], new([]string)).(*[]string),
		Statuses:   *abi.ConvertType(out[6], new([]string)).(*[]string),
		Distances:  *abi.ConvertType(out[7], new([]string)).(*[]string),
	}, nil
}

// GetAssetSpecificDetails calls getAssetSpecificDetails.
func (c *AssetTracker) GetAssetSpecificDetails(ctx context.Context, id *big.Int) (*contracts.AssetRecord, error) {
	const method = "getAssetSpecificDetails"
	out, err := c.call(ctx, method, id)
	if err != nil {
		return nil, err
	}
	if err := expect(method, out, 11); err != nil {
		return nil, err
	}
	rec := decodeAssetRecord(out)
	rec.Trailing = *abi.ConvertType(out[10], new(*big.Int)).(**big.Int)
	return rec, nil
}

// AssetID calls the public assetId mapping getter.
func (c *AssetTracker) AssetID(ctx context.Context, id *big.Int) (*contracts.AssetRecord, error) {
	const method = "assetId"
	out, err := c.call(ctx, method, id)
	if err != nil {
		return nil, err
	}
	if err := expect(method, out, 10); err != nil {
		return nil, err
	}
	return decodeAssetRecord(out), nil
}

func decodeAssetRecord(out []interface{}) *contracts.AssetRecord {
	return &contracts.AssetRecord{
		Sender:        *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Recipient:     *abi.ConvertType(out[1], new(common.Address)).(*common.Address),
		RecipientName: *abi.ConvertType(out[2], new(string)).(*string),
		Name:          *abi.ConvertType(out[3], new(string)).(*string),
		Description:   *abi.ConvertType(out[4], new(string)).(*string),
		Type:          *abi.ConvertType(out[5], new(string)).(*string),
		Location:      *abi.ConvertType(out[6], new(string)).(*string),
		Status:        *abi.ConvertType(out[7], new(string)).(*string),
		Distance:      *abi.ConvertType(out[8], new(string)).(*string),
		LastUpdated:   *abi.ConvertType(out[9], new(*big.Int)).(**big.Int),
	}
}

// GetAllUserDetails calls getAllUserDetails.
func (c *AssetTracker) GetAllUserDetails(ctx context.Context) (*contracts.UserColumns, error) {
	const method = "getAllUserDetails"
	out, err := c.call(ctx, method)
	if err != nil {
		return nil, err
	}
	if err := expect(method, out, 4); err != nil {
		return nil, err
	}
	return &contracts.UserColumns{
		IDs:        *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int),
		Addresses:  *abi.ConvertType(out[1], new([]common.Address)).(*[]common.Address),
		Names:      *abi.ConvertType(out[2], new([]string)).(*[]string),
		Timestamps: *abi.ConvertType(out[3], new([]*big.Int)).(*[]*big.Int),
	}, nil
}

// UserID calls the public userId mapping getter.
func (c *AssetTracker) UserID(ctx context.Context, id *big.Int) (*contracts.UserRecord, error) {
	const method = "userId"
	out, err := c.call(ctx, method, id)
	if err != nil {
		return nil, err
	}
	if err := expect(method, out, 3); err != nil {
		return nil, err
	}
	return &contracts.UserRecord{
		Address:   *abi.ConvertType(out[0], new(common.Address)).(*common.Address),
		Name:      *abi.ConvertType(out[1], new(string)).(*string),
		DateAdded: *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
	}, nil
}

// AuthorizedUser calls authorizedUser.
func (c *AssetTracker) AuthorizedUser(ctx context.Context, account common.Address) (bool, error) {
	const method = "authorizedUser"
	out, err := c.call(ctx, method, account)
	if err != nil {
		return false, err
	}
	if err := expect(method, out, 1); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// CreateAssetTracking submits createAssetTracking.
func (c *AssetTracker) CreateAssetTracking(ctx context.Context, recipient common.Address, recipientName, name, description, assetType, location, status, distance string) (*types.Transaction, error) {
	return c.transact(ctx, "createAssetTracking", recipient, recipientName, name, description, assetType, location, status, distance)
}

// UpdateAssetStatus submits updateAssetStatus.
func (c *AssetTracker) UpdateAssetStatus(ctx context.Context, id *big.Int, status string) (*types.Transaction, error) {
	return c.transact(ctx, "updateAssetStatus", id, status)
}

// TransferAssetTrackingOwnership submits transferAssetTrackingOwnership.
func (c *AssetTracker) TransferAssetTrackingOwnership(ctx context.Context, id *big.Int, newRecipient common.Address, newRecipientName string) (*types.Transaction, error) {
	return c.transact(ctx, "transferAssetTrackingOwnership", id, newRecipient, newRecipientName)
}

// AuthorizeAndCreateNewUser submits authorizeAndCreateNewUser.
func (c *AssetTracker) AuthorizeAndCreateNewUser(ctx context.Context, account common.Address, name string) (*types.Transaction, error) {
	return c.transact(ctx, "authorizeAndCreateNewUser", account, name)
}

// RevokeUserAuth submits revokeUserAuth.
func (c *AssetTracker) RevokeUserAuth(ctx context.Context, account common.Address) (*types.Transaction, error) {
	return c.transact(ctx, "revokeUserAuth", account)
}

// WaitMined blocks until tx is mined. A context that ends first yields a timeout naming the hash.
func (c *AssetTracker) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, trackererrors.NewTimeoutError("confirmation", "").WithTx(tx.Hash().Hex())
		}
		return nil, trackererrors.NewNetworkError("failed to await receipt", err)
	}
	return receipt, nil
}
