package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/shipit/internal/changelog"
	"github.com/ariel-frischer/shipit/internal/config"
	"github.com/ariel-frischer/shipit/internal/git"
	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/output"
)

var (
	statusWatchFlag bool
	statusPlainFlag bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pending release",
	Long: `Show what the next release would contain.

Reads the workspace version, the unreleased changelog entries, and the
repository state, and prints the bump the pending changes would produce.

Examples:
  shipit status           # Show the pending release once
  shipit status --watch   # Re-render whenever the changelog or manifest changes
  shipit status --plain   # Plain output (no colors/icons)`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runStatus,
}

func init() {
	statusCmd.GroupID = GroupInspection
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusWatchFlag, "watch", false, "Keep running and re-render on file changes")
	statusCmd.Flags().BoolVar(&statusPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := workDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !statusWatchFlag {
		return renderStatus(cmd.Context(), out, cfg, dir)
	}
	return watchStatus(cmd.Context(), out, cfg, dir)
}

func renderStatus(ctx context.Context, out io.Writer, cfg *config.Configuration, dir string) error {
	ws, err := manifest.LoadWorkspace(ctx, filepath.Join(dir, cfg.Manifest))
	if err != nil {
		return err
	}
	doc, err := changelog.Load(filepath.Join(dir, cfg.Changelog))
	if err != nil {
		return err
	}
	if err := changelog.Validate(doc); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", ws.Root.Name, ws.Version)
	if branch, err := git.CurrentBranch(dir); err == nil {
		state := "clean"
		if clean, err := git.IsClean(dir); err == nil && !clean {
			state = "dirty"
		}
		fmt.Fprintf(out, "on %s (%s)\n", branch, state)
	}
	fmt.Fprintln(out)

	unreleased := doc.Unreleased()
	if unreleased == nil || unreleased.Changes.IsEmpty() {
		output.PrintInfo(out, "No unreleased changes. The next release has nothing to ship.")
		return nil
	}

	level := changelog.Classify(unreleased.Changes)
	next := ws.Version.Bump(level)
	fmt.Fprintf(out, "Pending: %s bump to %s (tag %s)\n\n", level, next, next.Tag(cfg.TagPrefix))

	return changelog.FormatSection(unreleased, out, changelog.FormatOptions{Plain: statusPlainFlag})
}

// watchStatus re-renders the status whenever the changelog or the root
// manifest changes. Events are debounced so editors that write in bursts
// trigger a single render.
func watchStatus(ctx context.Context, out io.Writer, cfg *config.Configuration, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories so atomic renames are seen too.
	watched := map[string]bool{}
	for _, rel := range []string{cfg.Changelog, cfg.Manifest} {
		parent := filepath.Dir(filepath.Join(dir, rel))
		if watched[parent] {
			continue
		}
		if err := watcher.Add(parent); err != nil {
			return fmt.Errorf("watching %s: %w", parent, err)
		}
		watched[parent] = true
	}

	targets := map[string]bool{
		filepath.Join(dir, cfg.Changelog): true,
		filepath.Join(dir, cfg.Manifest):  true,
	}

	render := func() {
		fmt.Fprintln(out)
		output.PrintRule(out, "shipit status "+time.Now().Format("15:04:05"))
		if err := renderStatus(ctx, out, cfg, dir); err != nil {
			output.PrintFailure(out, err.Error())
		}
	}
	render()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !targets[event.Name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
