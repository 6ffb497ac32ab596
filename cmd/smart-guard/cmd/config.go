package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/smart-guard/internal/config"
)

var (
	// force allows overwriting an existing configuration file.
	force bool

	// errConfigExists is returned when config init would overwrite a file.
	errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

	// configCmd groups configuration helpers.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
	}

	// configInitCmd writes the factory configuration.
	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration.",
		Long: `Writes the factory configuration (Raspberry Pi pin names, display address,
timing table and password policy) to the given path or to ` + config.DefaultConfigFilename + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigFilename
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errConfigExists)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
}
