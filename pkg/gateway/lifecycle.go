package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"go.uber.org/zap"
)

// Start serves the dashboard until ctx is cancelled, then shuts down gracefully.
func (g *Gateway) Start(ctx context.Context) error {
	g.server = &http.Server{
		Addr:              g.cfg.ListenAddr,
		Handler:           g.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", g.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", g.cfg.ListenAddr, err)
	}

	g.logger.ComponentInfo(logging.ComponentGateway, "Gateway server starting",
		zap.String("listen_addr", listener.Addr().String()),
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := g.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.ComponentError(logging.ComponentGateway, "Gateway server error", zap.Error(err))
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		return g.Stop()
	case err := <-serveErr:
		g.Close()
		return err
	}
}

// Stop gracefully stops the gateway server
func (g *Gateway) Stop() error {
	g.Close()
	if g.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g.logger.ComponentInfo(logging.ComponentGateway, "Gateway shutting down",
		zap.Int("inflight_operations", g.inflight.count()),
	)

	if err := g.server.Shutdown(ctx); err != nil {
		g.logger.ComponentError(logging.ComponentGateway, "Gateway shutdown error", zap.Error(err))
		return err
	}

	g.logger.ComponentInfo(logging.ComponentGateway, "Gateway shutdown complete")
	return nil
}

// Close ends the websocket streams. Hijacked connections are not tracked by http.Server.Shutdown.
func (g *Gateway) Close() {
	g.quitOnce.Do(func() { close(g.quit) })
}
