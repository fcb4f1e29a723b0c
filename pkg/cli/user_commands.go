package cli

import (
	"context"
	"fmt"

	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List and administer authorized users",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List authorized users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listUsers(cmd, search)
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name or address")

	authorize := &cobra.Command{
		Use:   "authorize <address> <name>",
		Short: "Authorize an account to manage assets (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.authorizeUser(cmd, args[0], args[1])
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <address>",
		Short: "Revoke an authorized account (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.revokeUser(cmd, args[0])
		},
	}

	cmd.AddCommand(list, authorize, revoke)
	return cmd
}

func (app *App) listUsers(cmd *cobra.Command, search string) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	users, err := s.Tracker.ListUsers(ctx)
	if err != nil {
		return err
	}
	app.printUsers(tracker.FilterUsers(users, search))
	return nil
}

// admin opens a session whose account is the admin.
func (app *App) admin(ctx context.Context) (*Session, error) {
	s, err := app.connect(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Tracker.RequireAdmin(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (app *App) authorizeUser(cmd *cobra.Command, address, name string) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.admin(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Tracker.AuthorizeUser(ctx, address, name)
	if err != nil {
		return err
	}
	app.printTx(fmt.Sprintf("Authorized %s (%s)", name, address), res)
	return nil
}

func (app *App) revokeUser(cmd *cobra.Command, address string) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.admin(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Tracker.RevokeUser(ctx, address)
	if err != nil {
		return err
	}
	app.printTx(fmt.Sprintf("Revoked %s", address), res)
	return nil
}
