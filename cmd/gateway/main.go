package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeBrosOfficial/assettracker/pkg/client"
	"github.com/DeBrosOfficial/assettracker/pkg/config"
	"github.com/DeBrosOfficial/assettracker/pkg/gateway"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"go.uber.org/zap"
)

func setupLogger(cfg *config.Config) *logging.ColoredLogger {
	logger, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputFile: cfg.Logging.OutputFile,
		Colors:     true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func main() {
	cfg, err := parseGatewayConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(2)
	}
	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The gateway never prompts: passphrases come from connect requests or the passphrase file.
	c, err := client.NewClient(client.ClientConfigFrom(cfg, logger))
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "failed to create client", zap.Error(err))
		os.Exit(1)
	}
	if err := c.Connect(ctx); err != nil {
		logger.ComponentError(logging.ComponentChain, "failed to connect", zap.Error(err))
		os.Exit(1)
	}
	defer c.Disconnect()

	tr, err := c.Tracker()
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "tracker unavailable", zap.Error(err))
		os.Exit(1)
	}
	w, err := c.Wallet()
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "wallet unavailable", zap.Error(err))
		os.Exit(1)
	}

	g, err := gateway.New(logger, gateway.ConfigFrom(cfg), tr, w)
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "failed to initialize gateway", zap.Error(err))
		os.Exit(1)
	}

	if err := g.Start(ctx); err != nil {
		logger.ComponentError(logging.ComponentGateway, "gateway stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.ComponentInfo(logging.ComponentGeneral, "Gateway shutdown complete")
}
