package cli

import (
	"fmt"

	"github.com/DeBrosOfficial/assettracker/pkg/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newWalletCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect and connect the wallet",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the deployment and the keystore accounts without unlocking",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.walletStatus(cmd)
			},
		},
		&cobra.Command{
			Use:   "connect",
			Short: "Unlock the account and show what it may do",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.walletConnect(cmd)
			},
		},
	)
	return cmd
}

func (app *App) walletStatus(cmd *cobra.Command) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	keystoreDir, _ := config.ExpandPath(app.cfg.Wallet.KeystoreDir)
	w := newTable(app.Out)
	fmt.Fprintf(w, "Chain ID:\t%d\n", app.cfg.Chain.ChainID)
	fmt.Fprintf(w, "Contract:\t%s\n", app.cfg.Chain.ContractAddress)
	fmt.Fprintf(w, "Admin:\t%s\n", s.Tracker.Admin().Hex())
	fmt.Fprintf(w, "Keystore:\t%s\n", keystoreDir)
	if !s.Wallet.HasProvider() {
		fmt.Fprintf(w, "Wallet:\t%s\n", "no provider")
		w.Flush()
		return nil
	}
	fmt.Fprintf(w, "Wallet:\t%d account(s)\n", len(s.Keystore))
	w.Flush()

	for _, acc := range s.Keystore {
		marker := " "
		if app.cfg.Wallet.Account != "" && acc == common.HexToAddress(app.cfg.Wallet.Account) {
			marker = "*"
		}
		role := ""
		if s.Tracker.IsAdmin(acc.Hex()) {
			role = app.dim(" (admin)")
		}
		fmt.Fprintf(app.Out, " %s %s%s\n", marker, acc.Hex(), role)
	}
	return nil
}

func (app *App) walletConnect(cmd *cobra.Command) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	session, err := s.Tracker.Session(ctx)
	if err != nil {
		return err
	}

	role := "viewer"
	switch {
	case session.Admin:
		role = "admin"
	case session.AuthorizedUser:
		role = "authorized user"
	}
	fmt.Fprintf(app.Out, "✅ Connected %s\n", session.Account)
	fmt.Fprintf(app.Out, "   Role: %s\n", role)
	if !session.CanManageAssets() {
		fmt.Fprintln(app.Out, "   "+app.dim("This account can view assets but not create or modify them."))
	}
	return nil
}
