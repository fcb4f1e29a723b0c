package cli

import (
	"context"
	"os"

	"github.com/DeBrosOfficial/assettracker/pkg/client"
	"github.com/DeBrosOfficial/assettracker/pkg/config"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// Wallet is the part of the connection resolver the commands drive.
type Wallet interface {
	HasProvider() bool
	Current() (common.Address, bool)
	RequestConnection(ctx context.Context) (common.Address, error)
}

// Session is an open chain and wallet connection.
type Session struct {
	Tracker  *tracker.Adapter
	Wallet   Wallet
	Keystore []common.Address
	Close    func()
}

// OpenFunc opens a session for cfg.
type OpenFunc func(ctx context.Context, cfg *config.Config, logger *logging.ColoredLogger) (*Session, error)

// OpenClient connects through pkg/client and prompts on the terminal for the passphrase
// when no passphrase file is configured.
func OpenClient(ctx context.Context, cfg *config.Config, logger *logging.ColoredLogger) (*Session, error) {
	ccfg := client.ClientConfigFrom(cfg, logger)
	ccfg.Prompt = wallet.TerminalPassphrase(os.Stdin, os.Stderr)

	c, err := client.NewClient(ccfg)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	tr, err := c.Tracker()
	if err != nil {
		return nil, err
	}
	w, err := c.Wallet()
	if err != nil {
		return nil, err
	}
	return &Session{
		Tracker:  tr,
		Wallet:   w,
		Keystore: c.KeystoreAccounts(),
		Close:    func() { _ = c.Disconnect() },
	}, nil
}

// open opens a session without connecting an account.
func (app *App) open(ctx context.Context) (*Session, error) {
	s, err := app.Open(ctx, app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	if s.Close == nil {
		s.Close = func() {}
	}
	return s, nil
}

// connect opens a session and unlocks the account. Every contract call needs one.
func (app *App) connect(ctx context.Context) (*Session, error) {
	s, err := app.open(ctx)
	if err != nil {
		return nil, err
	}
	if !s.Wallet.HasProvider() {
		s.Close()
		return nil, trackererrors.NewNoProviderError("configure wallet.keystore_dir")
	}
	if _, err := s.Wallet.RequestConnection(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
