package tracker

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

// ListAssets returns every asset in contract order.
func (a *Adapter) ListAssets(ctx context.Context) ([]AssetSummary, error) {
	cols, err := a.ledger.GetAllAssetDetails(ctx)
	if err != nil {
		return nil, err
	}
	return zipAssets(cols)
}

func zipAssets(cols *contracts.AssetColumns) ([]AssetSummary, error) {
	const method = "getAllAssetDetails"
	n := len(cols.IDs)
	lengths := []int{len(cols.Senders), len(cols.Recipients), len(cols.Names), len(cols.Types),
		len(cols.Locations), len(cols.Statuses), len(cols.Distances)}
	for _, l := range lengths {
		if l != n {
			return nil, trackererrors.NewDecodeError(method, fmt.Sprintf("misaligned arrays: %d ids, lengths %v", n, lengths))
		}
	}

	assets := make([]AssetSummary, 0, n)
	for i := 0; i < n; i++ {
		id, err := toUint64(method, "id", cols.IDs[i])
		if err != nil {
			return nil, err
		}
		assets = append(assets, AssetSummary{
			ID:        id,
			Sender:    cols.Senders[i].Hex(),
			Recipient: cols.Recipients[i].Hex(),
			Name:      cols.Names[i],
			Type:      cols.Types[i],
			Location:  cols.Locations[i],
			Status:    cols.Statuses[i],
			Distance:  cols.Distances[i],
		})
	}
	return assets, nil
}

// GetAsset returns the full record of one asset. The contract answers unknown ids with an
// all-default tuple; that is reported as not found.
func (a *Adapter) GetAsset(ctx context.Context, id uint64) (*AssetDetail, error) {
	const method = "getAssetSpecificDetails"
	rec, err := a.ledger.GetAssetSpecificDetails(ctx, new(big.Int).SetUint64(id))
	if err != nil {
		return nil, err
	}
	if isEmptyAsset(rec) {
		return nil, trackererrors.NewNotFoundError("asset", strconv.FormatUint(id, 10))
	}
	ts, err := toUint64(method, "lastUpdatedTimeStamp", rec.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &AssetDetail{
		ID:                   id,
		Sender:               rec.Sender.Hex(),
		Recipient:            rec.Recipient.Hex(),
		RecipientName:        rec.RecipientName,
		Name:                 rec.Name,
		Description:          rec.Description,
		Type:                 rec.Type,
		Location:             rec.Location,
		Status:               rec.Status,
		Distance:             rec.Distance,
		LastUpdatedTimeStamp: ts,
		LastUpdated:          unixTime(ts),
	}, nil
}

func isEmptyAsset(rec *contracts.AssetRecord) bool {
	return rec.Sender == (common.Address{}) &&
		rec.Recipient == (common.Address{}) &&
		rec.RecipientName == "" &&
		rec.Name == "" &&
		rec.Description == "" &&
		rec.Type == "" &&
		rec.Location == "" &&
		rec.Status == "" &&
		rec.Distance == "" &&
		(rec.LastUpdated == nil || rec.LastUpdated.Sign() == 0)
}

// ListUsers returns the authorized users in contract order. Revoked slots, which keep a
// zero address or an empty name, are dropped.
func (a *Adapter) ListUsers(ctx context.Context) ([]User, error) {
	cols, err := a.ledger.GetAllUserDetails(ctx)
	if err != nil {
		return nil, err
	}
	return zipUsers(cols)
}

func zipUsers(cols *contracts.UserColumns) ([]User, error) {
	const method = "getAllUserDetails"
	n := len(cols.IDs)
	if len(cols.Addresses) != n || len(cols.Names) != n || len(cols.Timestamps) != n {
		return nil, trackererrors.NewDecodeError(method, fmt.Sprintf("misaligned arrays: %d ids, %d addresses, %d names, %d timestamps",
			n, len(cols.Addresses), len(cols.Names), len(cols.Timestamps)))
	}

	users := make([]User, 0, n)
	for i := 0; i < n; i++ {
		if cols.Addresses[i] == (common.Address{}) || cols.Names[i] == "" {
			continue
		}
		id, err := toUint64(method, "userId", cols.IDs[i])
		if err != nil {
			return nil, err
		}
		added, err := toUint64(method, "timestamp", cols.Timestamps[i])
		if err != nil {
			return nil, err
		}
		users = append(users, User{
			ID:            id,
			WalletAddress: cols.Addresses[i].Hex(),
			UserName:      cols.Names[i],
			DateAdded:     added,
			DateAddedTime: unixTime(added),
		})
	}
	return users, nil
}
