package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/flickr-mirror/internal/config"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration file management commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a commented default configuration file",
		Long: `Writes a configuration file with every setting at its default value.

The file is written to the path given by --config, or to ` + config.DefaultConfigFilename + `
in the current directory. An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filename := configFilenameFromFlag
			if filename == "" {
				filename = config.DefaultConfigFilename
			}

			if err := config.WriteDefaultConfig(filename); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", filename)

			return err
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
