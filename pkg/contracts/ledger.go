package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// AssetColumns is the bulk asset view: one array per field, aligned by index.
type AssetColumns struct {
	IDs        []*big.Int
	Senders    []common.Address
	Recipients []common.Address
	Names      []string
	Types      []string
	Locations  []string
	Statuses   []string
	Distances  []string
}

// AssetRecord is the fixed-position tuple returned for a single asset.
type AssetRecord struct {
	Sender        common.Address
	Recipient     common.Address
	RecipientName string
	Name          string
	Description   string
	Type          string
	Location      string
	Status        string
	Distance      string
	LastUpdated   *big.Int
	// Trailing is the undocumented final output of getAssetSpecificDetails. It is decoded so the
	// tuple unpacks and otherwise ignored.
	Trailing *big.Int
}

// UserColumns is the bulk user view: one array per field, aligned by index.
type UserColumns struct {
	IDs        []*big.Int
	Addresses  []common.Address
	Names      []string
	Timestamps []*big.Int
}

// UserRecord is one entry of the contract's user mapping.
type UserRecord struct {
	Address   common.Address
	Name      string
	DateAdded *big.Int
}

// AssetLedger is the typed surface of the deployed AssetTracker contract.
// Views return decoded outputs; mutators return the submitted transaction.
type AssetLedger interface {
	// GetAllAssetDetails returns every asset as parallel arrays, in contract order.
	GetAllAssetDetails(ctx context.Context) (*AssetColumns, error)

	// GetAssetSpecificDetails returns the full record of one asset. Unknown ids yield a
	// zero-valued record rather than an error.
	GetAssetSpecificDetails(ctx context.Context, id *big.Int) (*AssetRecord, error)

	// GetAllUserDetails returns every user slot as parallel arrays, revoked slots included.
	GetAllUserDetails(ctx context.Context) (*UserColumns, error)

	// AuthorizedUser reports whether the contract currently authorizes an address.
	AuthorizedUser(ctx context.Context, account common.Address) (bool, error)

	// CreateAssetTracking submits a new asset. Argument order follows the contract.
	CreateAssetTracking(ctx context.Context, recipient common.Address, recipientName, name, description, assetType, location, status, distance string) (*types.Transaction, error)

	// UpdateAssetStatus submits a status change.
	UpdateAssetStatus(ctx context.Context, id *big.Int, status string) (*types.Transaction, error)

	// TransferAssetTrackingOwnership submits a custody change.
	TransferAssetTrackingOwnership(ctx context.Context, id *big.Int, newRecipient common.Address, newRecipientName string) (*types.Transaction, error)

	// AuthorizeAndCreateNewUser submits a user authorization.
	AuthorizeAndCreateNewUser(ctx context.Context, account common.Address, name string) (*types.Transaction, error)

	// RevokeUserAuth submits a revocation.
	RevokeUserAuth(ctx context.Context, account common.Address) (*types.Transaction, error)

	// WaitMined blocks until tx is included and returns its receipt.
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}
