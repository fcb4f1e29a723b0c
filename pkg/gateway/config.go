package gateway

import (
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/config"
)

// Config holds configuration for the gateway server
type Config struct {
	ListenAddr     string
	ReadTimeout    time.Duration // Bound on view calls issued by one request
	ConfirmTimeout time.Duration // Bound on submission plus one confirmation
	AllowedOrigins []string

	// Reported by /v1/status
	ChainID         int64
	ContractAddress string
	AdminAddress    string
}

// ConfigFrom builds the gateway config from the shared configuration file.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		ListenAddr:      cfg.Gateway.ListenAddr,
		ReadTimeout:     cfg.Gateway.ReadTimeout,
		ConfirmTimeout:  cfg.Gateway.ConfirmTimeout,
		AllowedOrigins:  append([]string(nil), cfg.Gateway.AllowedOrigins...),
		ChainID:         cfg.Chain.ChainID,
		ContractAddress: cfg.Chain.ContractAddress,
		AdminAddress:    cfg.Chain.AdminAddress,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = 30 * time.Second
	}
	if out.ConfirmTimeout <= 0 {
		out.ConfirmTimeout = 3 * time.Minute
	}
	return &out
}
