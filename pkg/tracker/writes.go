package tracker

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Every write submits one transaction and blocks until it is included. Nothing is retried.
// A context that ends during the wait returns a timeout naming the hash; the transaction
// itself stays pending and cannot be retracted.

// CreateAsset submits a new asset. After confirmation the created record is located as the
// last listed asset from the active account with the submitted name and recipient; the
// summary is nil when that lookup fails.
func (a *Adapter) CreateAsset(ctx context.Context, in NewAsset) (*AssetSummary, *TxResult, error) {
	v, err := validateNewAsset(in)
	if err != nil {
		return nil, nil, err
	}
	tx, err := a.ledger.CreateAssetTracking(ctx, v.recipient, v.RecipientName, v.Name, v.Description, v.Type, v.Location, v.Status, v.Distance)
	if err != nil {
		return nil, nil, err
	}
	res, err := a.await(ctx, "createAssetTracking", tx)
	if err != nil {
		return nil, nil, err
	}

	created, err := a.locateCreated(ctx, v)
	if err != nil {
		a.logger.ComponentWarn(logging.ComponentTracker, "Created asset could not be located",
			zap.String("tx", res.Hash), zap.Error(err))
		return nil, res, nil
	}
	if created != nil {
		a.logger.ComponentInfo(logging.ComponentTracker, "Asset created",
			zap.Uint64("id", created.ID), zap.String("name", created.Name), zap.String("tx", res.Hash))
	}
	return created, res, nil
}

func (a *Adapter) locateCreated(ctx context.Context, v *validated) (*AssetSummary, error) {
	sender, ok, err := a.accounts.ActiveAccount(ctx)
	if err != nil || !ok {
		return nil, err
	}
	assets, err := a.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(assets) - 1; i >= 0; i-- {
		as := assets[i]
		if strings.EqualFold(as.Sender, sender.Hex()) &&
			strings.EqualFold(as.Recipient, v.Recipient) &&
			as.Name == v.Name {
			return &as, nil
		}
	}
	return nil, nil
}

// UpdateAssetStatus changes the status of an asset. Any non-empty status is accepted.
func (a *Adapter) UpdateAssetStatus(ctx context.Context, id uint64, status string) (*TxResult, error) {
	status, err := requireLength("status", status, minTextLength)
	if err != nil {
		return nil, err
	}
	tx, err := a.ledger.UpdateAssetStatus(ctx, new(big.Int).SetUint64(id), status)
	if err != nil {
		return nil, err
	}
	res, err := a.await(ctx, "updateAssetStatus", tx)
	if err != nil {
		return nil, err
	}
	a.logger.ComponentInfo(logging.ComponentTracker, "Asset status updated",
		zap.Uint64("id", id), zap.String("status", status), zap.String("tx", res.Hash))
	return res, nil
}

// TransferOwnership moves custody of an asset to a new recipient.
func (a *Adapter) TransferOwnership(ctx context.Context, id uint64, newRecipient, newRecipientName string) (*TxResult, error) {
	recipient, err := ParseAddress("newRecipient", newRecipient)
	if err != nil {
		return nil, err
	}
	name, err := requireLength("newRecipientName", newRecipientName, minNameLength)
	if err != nil {
		return nil, err
	}
	tx, err := a.ledger.TransferAssetTrackingOwnership(ctx, new(big.Int).SetUint64(id), recipient, name)
	if err != nil {
		return nil, err
	}
	res, err := a.await(ctx, "transferAssetTrackingOwnership", tx)
	if err != nil {
		return nil, err
	}
	a.logger.ComponentInfo(logging.ComponentTracker, "Asset transferred",
		zap.Uint64("id", id), zap.String("recipient", recipient.Hex()), zap.String("tx", res.Hash))
	return res, nil
}

// AuthorizeUser creates, or re-creates, the user record for address.
func (a *Adapter) AuthorizeUser(ctx context.Context, address, name string) (*TxResult, error) {
	account, err := ParseAddress("address", address)
	if err != nil {
		return nil, err
	}
	name, err = requireLength("userName", name, minNameLength)
	if err != nil {
		return nil, err
	}
	tx, err := a.ledger.AuthorizeAndCreateNewUser(ctx, account, name)
	if err != nil {
		return nil, err
	}
	res, err := a.await(ctx, "authorizeAndCreateNewUser", tx)
	if err != nil {
		return nil, err
	}
	a.logger.ComponentInfo(logging.ComponentTracker, "User authorized",
		zap.String("address", account.Hex()), zap.String("name", name), zap.String("tx", res.Hash))
	return res, nil
}

// RevokeUser revokes an authorized user. The admin account is refused locally, and an
// address the contract does not authorize is refused after a read; neither submits anything.
func (a *Adapter) RevokeUser(ctx context.Context, address string) (*TxResult, error) {
	account, err := ParseAddress("address", address)
	if err != nil {
		return nil, err
	}
	if account == a.admin {
		return nil, trackererrors.NewAuthorizationError("user", "revoke", "the admin account cannot be revoked")
	}
	authorized, err := a.ledger.AuthorizedUser(ctx, account)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, trackererrors.NewAuthorizationError("user", "revoke",
			fmt.Sprintf("%s is not an authorized user", account.Hex()))
	}

	tx, err := a.ledger.RevokeUserAuth(ctx, account)
	if err != nil {
		return nil, err
	}
	res, err := a.await(ctx, "revokeUserAuth", tx)
	if err != nil {
		return nil, err
	}
	a.logger.ComponentInfo(logging.ComponentTracker, "User revoked",
		zap.String("address", account.Hex()), zap.String("tx", res.Hash))
	return res, nil
}

func (a *Adapter) await(ctx context.Context, method string, tx *types.Transaction) (*TxResult, error) {
	hash := tx.Hash().Hex()
	receipt, err := a.ledger.WaitMined(ctx, tx)
	if err != nil {
		var timeoutErr *trackererrors.TimeoutError
		if !errors.As(err, &timeoutErr) && ctx.Err() != nil {
			err = trackererrors.NewTimeoutError(method, "").WithTx(hash)
		}
		a.logger.ComponentWarn(logging.ComponentTracker, "Transaction not confirmed",
			zap.String("method", method), zap.String("tx", hash), zap.Error(err))
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		a.logger.ComponentWarn(logging.ComponentTracker, "Transaction reverted",
			zap.String("method", method), zap.String("tx", hash))
		return nil, trackererrors.NewTxRevertedError(method, hash)
	}

	res := &TxResult{Hash: hash, GasUsed: receipt.GasUsed}
	if receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return res, nil
}

// sameAddress compares two account strings case-insensitively.
func sameAddress(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
