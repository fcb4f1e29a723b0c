// Package gateway serves the asset dashboard over HTTP: wallet session, asset list and
// detail, asset writes, user administration and a websocket stream of account changes.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/DeBrosOfficial/assettracker/pkg/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

// Wallet is the part of the connection resolver the gateway drives.
type Wallet interface {
	HasProvider() bool
	Current() (common.Address, bool)
	RequestConnection(ctx context.Context) (common.Address, error)
	Disconnect()
	SubscribeAccountChange(ch chan<- wallet.AccountChange) event.Subscription
}

var _ Wallet = (*wallet.Resolver)(nil)

// Gateway is the dashboard HTTP server
type Gateway struct {
	logger    *logging.ColoredLogger
	cfg       *Config
	tracker   *tracker.Adapter
	wallet    Wallet
	inflight  *inflightRegistry
	startedAt time.Time

	server   *http.Server
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a gateway over the tracker adapter and the wallet that signs for it.
func New(logger *logging.ColoredLogger, cfg *Config, tr *tracker.Adapter, w Wallet) (*Gateway, error) {
	if tr == nil {
		return nil, fmt.Errorf("gateway: tracker adapter is required")
	}
	if w == nil {
		return nil, fmt.Errorf("gateway: wallet is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg == nil {
		cfg = &Config{}
	}

	gw := &Gateway{
		logger:    logger,
		cfg:       cfg.withDefaults(),
		tracker:   tr,
		wallet:    w,
		inflight:  newInflightRegistry(),
		startedAt: time.Now(),
		quit:      make(chan struct{}),
	}

	logger.ComponentInfo(logging.ComponentGateway, "Gateway created",
		zap.String("listen_addr", gw.cfg.ListenAddr),
		zap.String("admin", tr.Admin().Hex()),
		zap.Bool("wallet_provider", w.HasProvider()),
	)
	return gw, nil
}

// readContext bounds the view calls of one request.
func (g *Gateway) readContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), g.cfg.ReadTimeout)
}

// writeContext bounds submission and confirmation of one transaction.
func (g *Gateway) writeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), g.cfg.ConfirmTimeout)
}
