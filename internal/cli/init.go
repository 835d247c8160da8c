package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipit/internal/config"
	"github.com/ariel-frischer/shipit/internal/errors"
	"github.com/ariel-frischer/shipit/internal/output"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter project config",
	Long: `Write a commented starter config to .shipit/config.yml.

The generated file documents every setting with its default value so a
project can adjust only what it needs.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	initCmd.GroupID = GroupRelease
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, config.ProjectConfigPath())
	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return errors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Re-run with --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(config.Template()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path))
	return nil
}
