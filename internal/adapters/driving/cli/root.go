// Package cli implements the handout command surface on cobra. Commands
// are package-level and register themselves in init(); the services they
// drive are built lazily on first use so auth commands work before any
// Google client can be constructed.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classkit-labs/handout-cli/internal/adapters/driven/config/file"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
	"github.com/classkit-labs/handout-cli/internal/logger"
)

var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string

	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "handout",
	Short: "Duplicate a Google Drive file per group and share the copies",
	Long: `Handout duplicates a Google Drive file once per recipient group,
optionally strips answer paragraphs from each copy, and shares each
copy with the group's members.

Groups come from a roster: a local CSV file, stdin, or a Drive-hosted
CSV or Google Sheet. Run 'handout auth login' once before the first use.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		if configStore == nil {
			store, err := file.NewConfigStore(configDirFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			configStore = store
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "",
		"Config directory (default ~/.handout)")
}

// configDir resolves the active config directory.
func configDir() (string, error) {
	if configDirFlag != "" {
		return configDirFlag, nil
	}
	return file.DefaultDir()
}

// Execute runs the root command. The version string is stamped by the
// build.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}
