package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/config"
)

// parseGatewayConfig loads the config file and applies flags on top.
// Priority: flags > env > file > defaults.
func parseGatewayConfig(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	path := fs.String("config", "", "Config file (default ~/.tracker/gateway.yaml when present)")
	addr := fs.String("addr", "", "HTTP listen address (e.g., :6100)")
	rpc := fs.String("rpc-url", "", "Chain JSON-RPC endpoint")
	keystore := fs.String("keystore", "", "Keystore directory")
	origins := fs.String("allowed-origins", "", "Comma-separated CORS origins")
	confirm := fs.Duration("confirm-timeout", 0, "Bound on submission plus confirmation")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	p := *path
	if p == "" {
		var err error
		if p, err = config.DefaultPath("gateway.yaml"); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(*addr); v != "" {
		cfg.Gateway.ListenAddr = v
	}
	if v := strings.TrimSpace(*rpc); v != "" {
		cfg.Chain.RPCURL = v
	}
	if v := strings.TrimSpace(*keystore); v != "" {
		cfg.Wallet.KeystoreDir = v
	}
	if v := strings.TrimSpace(*origins); v != "" {
		cfg.Gateway.AllowedOrigins = splitList(v)
	}
	if *confirm > time.Duration(0) {
		cfg.Gateway.ConfirmTimeout = *confirm
	}
	if v := strings.TrimSpace(*logLevel); v != "" {
		cfg.Logging.Level = v
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config: %v\n", e)
		}
		return nil, fmt.Errorf("%d configuration error(s)", len(errs))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
