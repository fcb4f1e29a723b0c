package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DeBrosOfficial/assettracker/pkg/cli"
	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli.Version, cli.Commit, cli.Date = version, commit, date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cli.NewApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintf(os.Stderr, "   %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}

func hintFor(err error) string {
	switch trackererrors.GetErrorCode(err) {
	case trackererrors.CodeNoProvider:
		return "Create an account with geth account new --keystore <dir> and set wallet.keystore_dir."
	case trackererrors.CodeChainMismatch:
		return "Point chain.rpc_url at a node of the configured chain."
	case trackererrors.CodeForbidden:
		return "Ask the admin account to authorize this address."
	case trackererrors.CodeTimeout:
		return "The transaction may still be mined; check it before resubmitting."
	default:
		return ""
	}
}
