package binding

import (
	"context"
	"fmt"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to a JSON-RPC endpoint (http, ws or ipc).
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, trackererrors.NewNetworkError(fmt.Sprintf("failed to dial %s", rpcURL), err)
	}
	return client, nil
}
