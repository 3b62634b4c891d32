// Package cli implements the lookingglass command line: one command per
// dashboard page plus health checks and a periodic watch mode.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rewired-gh/lookingglass/internal/config"
	"github.com/rewired-gh/lookingglass/internal/logger"
)

// Set at build time with -ldflags "-X .../internal/cli.version=...".
var version = "dev"

// defaultConfigPath is used when --config is not given and the file exists.
const defaultConfigPath = "configs/config.yaml"

// options carries global flags and the loaded configuration to subcommands.
type options struct {
	cfgFile  string
	logLevel string
	noColor  bool

	cfg *config.Config
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "lookingglass",
		Short: "Looking Glass - terminal client for the analytics dashboard",
		Long: `Looking Glass fetches timeline events, probability analyses, narrative
clusters and geospatial activity from the analytics backend and renders
them as terminal pages.

Each page command mounts its view once and prints the result. The watch
command refreshes the whole dashboard periodically and can post a digest
to Telegram.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: "+defaultConfigPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(opts),
		newHealthCmd(opts),
		newDashboardCmd(opts),
		newTimelineCmd(opts),
		newProbabilityCmd(opts),
		newNarrativesCmd(opts),
		newGeospatialCmd(opts),
		newWatchCmd(opts),
	)

	return rootCmd
}

// load reads and validates the configuration, then sets up logging.
func (o *options) load() error {
	path := o.cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if o.noColor {
		color.NoColor = true
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if path != "" {
		logger.Debug("Configuration loaded from %s", path)
	}

	o.cfg = cfg
	return nil
}

// errNotLoaded guards against running a command without PersistentPreRunE.
var errNotLoaded = errors.New("configuration not loaded")

func (o *options) config() (*config.Config, error) {
	if o.cfg == nil {
		return nil, errNotLoaded
	}
	return o.cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the version number of lookingglass.`,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lookingglass %s\n", version)
		},
	}
}
