// Package cli implements the tracker command line: wallet session, asset list and detail,
// asset writes and user administration against the deployed contract.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/DeBrosOfficial/assettracker/pkg/config"
	"github.com/DeBrosOfficial/assettracker/pkg/logging"
	"github.com/spf13/cobra"
)

// version metadata populated via -ldflags at build time
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// App holds the state shared by every command of one invocation.
type App struct {
	Out io.Writer
	Err io.Writer

	// Open connects to the chain and the wallet. Replaced in tests.
	Open OpenFunc

	configPath string
	timeout    time.Duration
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *logging.ColoredLogger
}

// NewApp returns an app writing to stdout and stderr.
func NewApp() *App {
	return &App{Out: os.Stdout, Err: os.Stderr, Open: OpenClient}
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Track assets on the AssetTracker contract",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&app.configPath, "config", "", "config file (default ~/.tracker/config.yaml)")
	pf.DurationVar(&app.timeout, "timeout", 3*time.Minute, "bound on each command, including transaction confirmation")
	pf.BoolVar(&app.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	root.AddCommand(
		newVersionCmd(app),
		newWalletCmd(app),
		newAssetsCmd(app),
		newUsersCmd(app),
	)
	return root
}

func (app *App) init() error {
	path := app.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath("config.yaml"); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, "  "+e.Error())
		}
		return fmt.Errorf("invalid configuration:\n%s", strings.Join(msgs, "\n"))
	}
	app.cfg = cfg

	level := "warn"
	if app.verbose {
		level = cfg.Logging.Level
	}
	app.logger = logging.NewWriterLogger(app.Err, level)
	return nil
}

// context bounds one command by --timeout.
func (app *App) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if app.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, app.timeout)
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.Out, "tracker %s", Version)
			if Commit != "" {
				fmt.Fprintf(app.Out, " (commit %s)", Commit)
			}
			if Date != "" {
				fmt.Fprintf(app.Out, " built %s", Date)
			}
			fmt.Fprintln(app.Out)
		},
	}
}
