package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/flickr-mirror/internal/app"
	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "flickr-mirror [flags]",
		Short: "Mirror every album of a Flickr account onto local storage.",
		Long: `Flickr Mirror copies all photos and videos of a Flickr account to disk,
one directory per album.

Files that already exist are skipped, interrupted transfers are resumed,
and failed downloads are retried until they succeed (or until the
configured attempt limit is reached). Run it again at any time to pick up
new media.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRun:        initConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			return app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
// SIGINT and SIGTERM cancel the running mirror; the summary is still printed.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	_ = logger.Logger().Sync()

	if err != nil {
		logger.Errorf(ctx, "%v", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to mirror albums into (the path will be created if it doesn’t exist).")

	rootCmdFlags.StringP(
		"user",
		"u",
		"",
		"NSID of the account to mirror, for example: 12345678@N01.")

	rootCmdFlags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit, for example: 500KB, 1MB, 1.5MB.")

	rootCmdFlags.Int64P(
		"max-attempts",
		"m",
		0,
		"give up on a file after this many failed attempts (0 retries forever).")

	rootCmdFlags.Bool(
		"dry-run",
		false,
		"index the catalog and report what would be downloaded without writing anything.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("user"); flag != nil && flag.Changed {
		cfg.UserID, _ = flags.GetString("user")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	if flag := flags.Lookup("max-attempts"); flag != nil && flag.Changed {
		cfg.MaxDownloadAttempts, _ = flags.GetInt64("max-attempts")
	}

	if flag := flags.Lookup("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	return config.ValidateConfig(cfg)
}
