package tracker

import (
	"math/big"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/contracts"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/ethereum/go-ethereum/common"
)

// Adapter is stateless per call: every value is fetched from the contract on demand.
// Callers bound each operation through the context.
type Adapter struct {
	ledger   contracts.AssetLedger
	accounts contracts.AccountSource
	admin    common.Address
	logger   *logging.ColoredLogger
}

// New creates an adapter over ledger. admin is the single account allowed to manage users.
func New(ledger contracts.AssetLedger, accounts contracts.AccountSource, admin common.Address, logger *logging.ColoredLogger) *Adapter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Adapter{
		ledger:   ledger,
		accounts: accounts,
		admin:    admin,
		logger:   logger,
	}
}

// Admin returns the configured admin address.
func (a *Adapter) Admin() common.Address {
	return a.admin
}

func toUint64(method, field string, v *big.Int) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	if !v.IsUint64() {
		return 0, trackererrors.NewDecodeError(method, field+" does not fit in 64 bits: "+v.String())
	}
	return v.Uint64(), nil
}

func unixTime(sec uint64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}
