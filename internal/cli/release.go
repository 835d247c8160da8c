package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipit/internal/command"
	"github.com/ariel-frischer/shipit/internal/git"
	"github.com/ariel-frischer/shipit/internal/output"
	"github.com/ariel-frischer/shipit/internal/progress"
	"github.com/ariel-frischer/shipit/internal/release"
)

var (
	releaseDryRunFlag      bool
	releaseAllowDirtyFlag  bool
	releaseSkipPushFlag    bool
	releaseSkipPublishFlag bool
	releaseDateFlag        string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Cut a release from the unreleased changelog entries",
	Long: `Cut a release driven by the changelog's Unreleased section.

The unreleased entries decide the bump: Removed or Changed entries force a
major release, Added entries a minor release, and Deprecated, Fixed, or
Security entries a patch release. Every workspace manifest and the
changelog are rewritten, the result is committed, tagged, and pushed, and
the workspace members are published in dependency order.

Examples:
  shipit release                     # Cut and publish a release
  shipit release --dry-run           # Show the plan without touching anything
  shipit release --skip-publish      # Release without publishing to the registry
  shipit release --date 2026-09-01   # Override the release date`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRelease,
}

func init() {
	releaseCmd.GroupID = GroupRelease
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().BoolVar(&releaseDryRunFlag, "dry-run", false, "Print the release plan without modifying anything")
	releaseCmd.Flags().BoolVar(&releaseAllowDirtyFlag, "allow-dirty", false, "Release from a worktree with uncommitted changes")
	releaseCmd.Flags().BoolVar(&releaseSkipPushFlag, "skip-push", false, "Do not push the branch and tag")
	releaseCmd.Flags().BoolVar(&releaseSkipPublishFlag, "skip-publish", false, "Do not publish workspace members")
	releaseCmd.Flags().StringVar(&releaseDateFlag, "date", "", "Release date as YYYY-MM-DD (default today, UTC)")
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir, err := workDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := release.New(cfg, dir, &command.ExecRunner{Stdout: out, Stderr: cmd.ErrOrStderr()}, out)
	p.Display = progress.NewDisplay(out, progress.DetectTerminalCapabilities())
	p.Options = release.Options{
		DryRun:      releaseDryRunFlag,
		AllowDirty:  releaseAllowDirtyFlag,
		SkipPush:    releaseSkipPushFlag,
		SkipPublish: releaseSkipPublishFlag,
		Date:        releaseDateFlag,
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch {
	case result.NoChanges:
		output.PrintInfo(out, fmt.Sprintf("Nothing to release: no unreleased changes (current version %s).", result.Previous))
	case result.DryRun:
		output.PrintInfo(out, "Dry run complete. Nothing was modified.")
	default:
		output.PrintSuccess(out, fmt.Sprintf("Released %s (%s bump from %s).", result.Next, result.Level, result.Previous))
	}
	return nil
}

// workDir resolves the repository root the commands operate on, falling
// back to the current directory outside a repository.
func workDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := git.RepositoryRoot(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}
