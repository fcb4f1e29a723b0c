// Package client assembles the chain connection, the keystore wallet, the contract binding
// and the tracker adapter from configuration. Both binaries build on it.
package client

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/binding"
	"github.com/DeBrosOfficial/assettracker/pkg/config"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// Client owns every connection of one process
type Client struct {
	config *ClientConfig
	logger *logging.ColoredLogger

	eth      *ethclient.Client
	provider *wallet.KeystoreProvider
	keystore []common.Address
	resolver *wallet.Resolver
	contract *binding.AssetTracker
	tracker  *tracker.Adapter

	connected bool
	startTime time.Time
	mu        sync.RWMutex
}

// HealthStatus describes the client state
type HealthStatus struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	CheckedAt time.Time         `json:"checked_at"`
	Uptime    string            `json:"uptime"`
}

// NewClient creates a client; nothing is dialed until Connect.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, NewClientError("new", "config cannot be nil", ErrInvalidConfig)
	}
	if cfg.Chain.RPCURL == "" {
		return nil, NewClientError("new", "rpc url is required", ErrInvalidConfig)
	}
	if cfg.Chain.ChainID <= 0 {
		return nil, NewClientError("new", "chain id must be positive", ErrInvalidConfig)
	}
	if !common.IsHexAddress(cfg.Chain.ContractAddress) || !common.IsHexAddress(cfg.Chain.AdminAddress) {
		return nil, NewClientError("new", "contract and admin addresses are required", ErrInvalidConfig)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{config: cfg, logger: logger, startTime: time.Now()}, nil
}

// Connect dials the node, opens the keystore and binds the contract. A missing keystore
// is not an error: the client runs with no wallet provider.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	eth, err := binding.Dial(ctx, c.config.Chain.RPCURL)
	if err != nil {
		return err
	}
	chainID := big.NewInt(c.config.Chain.ChainID)

	var provider wallet.Provider
	ks, err := c.openKeystore()
	switch {
	case err == nil:
		c.provider = wallet.NewKeystoreProvider(ks, eth, wallet.KeystoreOptions{
			Account:    c.configuredAccount(),
			Passphrase: c.passphrase(),
		}, c.logger)
		c.provider.Start()
		provider = c.provider
		for _, acc := range ks.Accounts() {
			c.keystore = append(c.keystore, acc.Address)
		}
	case trackererrors.GetErrorCode(err) == trackererrors.CodeNoProvider:
		c.logger.ComponentWarn(logging.ComponentWallet, "No keystore available, running without a wallet", zap.Error(err))
	default:
		eth.Close()
		return err
	}

	resolver := wallet.NewResolver(provider, chainID, c.logger)
	resolver.Start()

	contract, err := binding.NewAssetTracker(common.HexToAddress(c.config.Chain.ContractAddress), eth, resolver, c.logger)
	if err != nil {
		c.closeLocked(eth, resolver)
		return err
	}
	if !c.config.SkipDeployCheck {
		if err := contract.CheckDeployed(ctx); err != nil {
			c.closeLocked(eth, resolver)
			return err
		}
	}

	c.eth = eth
	c.resolver = resolver
	c.contract = contract
	c.tracker = tracker.New(contract, resolver, common.HexToAddress(c.config.Chain.AdminAddress), c.logger)
	c.connected = true

	c.logger.ComponentInfo(logging.ComponentChain, "Client connected",
		zap.String("rpc_url", c.config.Chain.RPCURL),
		zap.Int64("chain_id", c.config.Chain.ChainID),
		zap.String("contract", contract.Address().Hex()),
		zap.Bool("wallet_provider", provider != nil),
	)
	return nil
}

func (c *Client) openKeystore() (*keystore.KeyStore, error) {
	dir, err := config.ExpandPath(c.config.Wallet.KeystoreDir)
	if err != nil {
		return nil, trackererrors.NewNoProviderError(err.Error())
	}
	return wallet.OpenKeystore(dir)
}

func (c *Client) configuredAccount() common.Address {
	if common.IsHexAddress(c.config.Wallet.Account) {
		return common.HexToAddress(c.config.Wallet.Account)
	}
	return common.Address{}
}

// passphrase tries the request context, then the passphrase file, then the prompt.
func (c *Client) passphrase() wallet.PassphraseFunc {
	sources := []wallet.PassphraseFunc{wallet.ContextPassphrase()}
	if c.config.Wallet.PassphraseFile != "" {
		if path, err := config.ExpandPath(c.config.Wallet.PassphraseFile); err == nil {
			sources = append(sources, wallet.FilePassphrase(path))
		}
	}
	if c.config.Prompt != nil {
		sources = append(sources, c.config.Prompt)
	}
	return wallet.FirstPassphrase(sources...)
}

// closeLocked releases the partial state of a failed Connect.
func (c *Client) closeLocked(eth *ethclient.Client, resolver *wallet.Resolver) {
	resolver.Close()
	if c.provider != nil {
		c.provider.Close()
		c.provider = nil
	}
	c.keystore = nil
	eth.Close()
}

// Disconnect locks the wallet and closes the node connection
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	c.resolver.Disconnect()
	c.closeLocked(c.eth, c.resolver)
	c.connected = false

	c.logger.ComponentInfo(logging.ComponentChain, "Client disconnected")
	return nil
}

// Tracker returns the adapter over the bound contract
func (c *Client) Tracker() (*tracker.Adapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return nil, ErrNotConnected
	}
	return c.tracker, nil
}

// Wallet returns the connection resolver
func (c *Client) Wallet() (*wallet.Resolver, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return nil, ErrNotConnected
	}
	return c.resolver, nil
}

// KeystoreAccounts lists the accounts found in the keystore, locked or not.
func (c *Client) KeystoreAccounts() []common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]common.Address(nil), c.keystore...)
}

// Config returns a snapshot copy of the client's configuration
func (c *Client) Config() *ClientConfig {
	cp := *c.config
	return &cp
}

// Health returns the current health status
func (c *Client) Health() *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := "healthy"
	checks := map[string]string{
		"chain":  "ok",
		"wallet": "ok",
	}
	if !c.connected {
		status = "unhealthy"
		checks["chain"] = "disconnected"
		checks["wallet"] = "disconnected"
	} else if c.provider == nil {
		status = "degraded"
		checks["wallet"] = "no provider"
	} else if _, ok := c.resolver.Current(); !ok {
		checks["wallet"] = "locked"
	}

	return &HealthStatus{
		Status:    status,
		Checks:    checks,
		CheckedAt: time.Now(),
		Uptime:    time.Since(c.startTime).String(),
	}
}
