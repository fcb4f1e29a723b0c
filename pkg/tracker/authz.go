package tracker

import (
	"context"
	"fmt"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

// IsAdmin reports whether account is the configured admin address, ignoring case.
// It is the only place the admin policy is decided.
func (a *Adapter) IsAdmin(account string) bool {
	return sameAddress(account, a.admin.Hex())
}

// IsAuthorizedUser reports whether account appears in the current user list, ignoring case.
// The list is fetched on every call.
func (a *Adapter) IsAuthorizedUser(ctx context.Context, account string) (bool, error) {
	users, err := a.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if sameAddress(u.WalletAddress, account) {
			return true, nil
		}
	}
	return false, nil
}

// Session derives the authorization state of the active account.
func (a *Adapter) Session(ctx context.Context) (Session, error) {
	account, ok, err := a.accounts.ActiveAccount(ctx)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, nil
	}
	s := Session{
		Account:   account.Hex(),
		Connected: true,
		Admin:     a.IsAdmin(account.Hex()),
	}
	s.AuthorizedUser, err = a.IsAuthorizedUser(ctx, account.Hex())
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

// RequireAuthorized returns the active account when it is the admin or an authorized user.
func (a *Adapter) RequireAuthorized(ctx context.Context) (common.Address, error) {
	s, err := a.Session(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if !s.Connected {
		return common.Address{}, trackererrors.NewNotConnectedError()
	}
	if !s.CanManageAssets() {
		return common.Address{}, trackererrors.NewAuthorizationError("asset", "manage",
			fmt.Sprintf("%s is not an authorized user", s.Account))
	}
	return common.HexToAddress(s.Account), nil
}

// RequireAdmin returns the active account when it is the admin.
func (a *Adapter) RequireAdmin(ctx context.Context) (common.Address, error) {
	account, ok, err := a.accounts.ActiveAccount(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if !ok {
		return common.Address{}, trackererrors.NewNotConnectedError()
	}
	if !a.IsAdmin(account.Hex()) {
		return common.Address{}, trackererrors.NewAuthorizationError("user", "manage",
			fmt.Sprintf("%s is not the admin account", account.Hex()))
	}
	return account, nil
}
