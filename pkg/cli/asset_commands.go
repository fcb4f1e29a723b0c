package cli

import (
	"context"
	"fmt"
	"strconv"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/DeBrosOfficial/assettracker/pkg/tracker"
	"github.com/spf13/cobra"
)

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, trackererrors.NewValidationError("id", "must be a non-negative integer", raw)
	}
	return id, nil
}

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "List, inspect and manage tracked assets",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listAssets(cmd, search)
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name, type, sender, recipient or location")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.getAsset(cmd, args[0])
		},
	}

	var in tracker.NewAsset
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an asset (authorized users)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.createAsset(cmd, in)
		},
	}
	f := create.Flags()
	f.StringVar(&in.Recipient, "recipient", "", "recipient wallet address")
	f.StringVar(&in.RecipientName, "recipient-name", "", "recipient name")
	f.StringVar(&in.Name, "name", "", "asset name")
	f.StringVar(&in.Description, "description", "", "asset description")
	f.StringVar(&in.Type, "type", "", "asset type")
	f.StringVar(&in.Location, "location", "", "current location")
	f.StringVar(&in.Status, "status", tracker.StatusPending, "initial status")
	f.StringVar(&in.Distance, "distance", "", "distance to destination")
	for _, name := range []string{"recipient", "recipient-name", "name", "description", "type", "location", "distance"} {
		_ = create.MarkFlagRequired(name)
	}

	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set the status of an asset (authorized users)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.updateStatus(cmd, args[0], args[1])
		},
	}

	transfer := &cobra.Command{
		Use:   "transfer <id> <recipient> <recipient-name>",
		Short: "Hand an asset to a new recipient (authorized users)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.transfer(cmd, args[0], args[1], args[2])
		},
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Count assets by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.assetSummary(cmd)
		},
	}

	cmd.AddCommand(list, get, create, status, transfer, summary)
	return cmd
}

func (app *App) listAssets(cmd *cobra.Command, search string) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	assets, err := s.Tracker.ListAssets(ctx)
	if err != nil {
		return err
	}
	app.printAssets(tracker.FilterAssets(assets, search))
	return nil
}

func (app *App) getAsset(cmd *cobra.Command, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	asset, err := s.Tracker.GetAsset(ctx, id)
	if err != nil {
		return err
	}
	app.printAsset(asset)
	return nil
}

func (app *App) assetSummary(cmd *cobra.Command) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	assets, err := s.Tracker.ListAssets(ctx)
	if err != nil {
		return err
	}
	app.printStats(tracker.Summarize(assets))
	return nil
}

// authorized opens a session whose account may manage assets.
func (app *App) authorized(ctx context.Context) (*Session, error) {
	s, err := app.connect(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Tracker.RequireAuthorized(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (app *App) createAsset(cmd *cobra.Command, in tracker.NewAsset) error {
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.authorized(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	asset, res, err := s.Tracker.CreateAsset(ctx, in)
	if err != nil {
		return err
	}
	if asset != nil {
		app.printTx(fmt.Sprintf("Created asset #%d %q", asset.ID, asset.Name), res)
		return nil
	}
	app.printTx(fmt.Sprintf("Created asset %q", in.Name), res)
	return nil
}

func (app *App) updateStatus(cmd *cobra.Command, rawID, status string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.authorized(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Tracker.UpdateAssetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	app.printTx(fmt.Sprintf("Asset #%d is now %s", id, app.badge(status)), res)
	return nil
}

func (app *App) transfer(cmd *cobra.Command, rawID, recipient, name string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	ctx, cancel := app.context(cmd)
	defer cancel()

	s, err := app.authorized(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Tracker.TransferOwnership(ctx, id, recipient, name)
	if err != nil {
		return err
	}
	app.printTx(fmt.Sprintf("Asset #%d transferred to %s", id, name), res)
	return nil
}
