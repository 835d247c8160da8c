// Package cli implements the shipit command-line interface.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipit/internal/config"
	"github.com/ariel-frischer/shipit/internal/errors"
	"github.com/ariel-frischer/shipit/internal/git"
)

// Command group IDs for the root help output.
const (
	GroupRelease    = "release"
	GroupInspection = "inspection"
)

var (
	configPathFlag string
	debugFlag      bool
	noColorFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "shipit",
	Short: "Release automation for cargo workspaces",
	Long: `shipit cuts releases for cargo workspaces driven by the changelog.

It reads the Unreleased section of a Keep a Changelog file, classifies the
changes into a major, minor, or patch bump, rewrites every workspace
manifest and the changelog, commits, tags, pushes, and publishes the
workspace members in dependency order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
		if debugFlag {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to the project config file (default .shipit/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection Commands:"},
	)
}

// loadConfig loads the effective configuration, honoring --config.
func loadConfig() (*config.Configuration, error) {
	path := configPathFlag
	if path == "" {
		path = config.ProjectConfigPath()
	}
	return config.Load(path)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd, err)
		return exitCode(err)
	}
	return ExitSuccess
}

func printError(cmd *cobra.Command, err error) {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.FprintError(cmd.ErrOrStderr(), cliErr)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
