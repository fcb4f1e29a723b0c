package validate

import (
	"fmt"
	"time"
)

// GatewayConfig represents the gateway configuration for validation purposes.
type GatewayConfig struct {
	ListenAddr     string
	ReadTimeout    time.Duration
	ConfirmTimeout time.Duration
	AllowedOrigins []string
}

// ValidateGateway validates the dashboard server settings.
func ValidateGateway(g GatewayConfig) []error {
	var errs []error

	if err := ValidateListenAddr(g.ListenAddr); err != nil {
		errs = append(errs, ValidationError{
			Path:    "gateway.listen_addr",
			Message: err.Error(),
			Hint:    "e.g. :6100 or 127.0.0.1:6100",
		})
	}
	if g.ReadTimeout <= 0 {
		errs = append(errs, ValidationError{
			Path:    "gateway.read_timeout",
			Message: fmt.Sprintf("must be positive; got %s", g.ReadTimeout),
		})
	}
	if g.ConfirmTimeout < g.ReadTimeout {
		errs = append(errs, ValidationError{
			Path:    "gateway.confirm_timeout",
			Message: fmt.Sprintf("must be at least read_timeout (%s); got %s", g.ReadTimeout, g.ConfirmTimeout),
			Hint:    "confirmation waits for a block, allow several block times",
		})
	}
	for i, origin := range g.AllowedOrigins {
		if origin == "" {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("gateway.allowed_origins[%d]", i),
				Message: "must not be empty",
			})
		}
	}
	return errs
}
