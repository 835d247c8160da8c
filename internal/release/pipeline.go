// Package release drives the release pipeline: preflight checks, version
// classification, manifest and changelog rewrites, git operations, and
// publishing.
package release

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/ariel-frischer/shipit/internal/changelog"
	"github.com/ariel-frischer/shipit/internal/command"
	"github.com/ariel-frischer/shipit/internal/config"
	"github.com/ariel-frischer/shipit/internal/errors"
	"github.com/ariel-frischer/shipit/internal/git"
	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/output"
	"github.com/ariel-frischer/shipit/internal/progress"
	"github.com/ariel-frischer/shipit/internal/publish"
	"github.com/ariel-frischer/shipit/internal/semver"
)

// Options are the per-run flags for the release pipeline.
type Options struct {
	// DryRun prints the release plan without modifying anything.
	DryRun bool
	// AllowDirty skips the clean-worktree preflight check.
	AllowDirty bool
	// SkipPush skips pushing the branch and tag.
	SkipPush bool
	// SkipPublish skips publishing workspace members.
	SkipPublish bool
	// Date overrides the release date (YYYY-MM-DD). Empty means today, UTC.
	Date string
}

// Result summarizes what a pipeline run did (or, for a dry run, would do).
type Result struct {
	Previous  semver.Version
	Next      semver.Version
	Level     semver.Level
	Tag       string
	Date      string
	Published []string
	NoChanges bool
	DryRun    bool
}

// Pipeline runs the release steps in order. Any error halts the run;
// nothing is retried or rolled back.
type Pipeline struct {
	Config  *config.Configuration
	Runner  command.Runner
	Display *progress.Display
	Out     io.Writer
	// Dir is the repository root everything is resolved against.
	Dir     string
	Options Options

	// lookPath locates required binaries. Overridable in tests.
	lookPath func(string) error
}

// New creates a Pipeline with the standard binary lookup.
func New(cfg *config.Configuration, dir string, runner command.Runner, out io.Writer) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Runner:   runner,
		Out:      out,
		Dir:      dir,
		lookPath: command.LookPath,
	}
}

const totalSteps = 8

// Run executes the pipeline. A missing or empty Unreleased section is not
// an error: the returned Result has NoChanges set and nothing is modified.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.lookPath == nil {
		p.lookPath = command.LookPath
	}

	date, err := p.releaseDate()
	if err != nil {
		return nil, err
	}

	p.step(1, "Preflight checks")
	if err := p.preflight(); err != nil {
		return nil, err
	}

	p.step(2, "Load workspace")
	ws, err := p.loadWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	p.step(3, "Read changelog")
	doc, err := p.loadChangelog()
	if err != nil {
		return nil, err
	}
	if !doc.HasUnreleasedChanges() {
		return &Result{Previous: ws.Version, NoChanges: true, DryRun: p.Options.DryRun}, nil
	}

	p.step(4, "Classify changes")
	level := changelog.Classify(doc.Unreleased().Changes)
	next := ws.Version.Bump(level)
	result := &Result{
		Previous: ws.Version,
		Next:     next,
		Level:    level,
		Tag:      next.Tag(p.Config.TagPrefix),
		Date:     date,
		DryRun:   p.Options.DryRun,
	}

	order, err := ws.PublishOrder()
	if err != nil {
		return nil, err
	}
	for _, m := range order {
		result.Published = append(result.Published, m.Name)
	}

	if p.Options.DryRun {
		p.printPlan(ws, result)
		return result, nil
	}

	p.step(5, "Refresh lockfile")
	if err := p.refreshLockfile(ctx); err != nil {
		return nil, err
	}

	p.step(6, "Write manifests and changelog")
	if err := ws.SetVersion(next); err != nil {
		return nil, err
	}
	if err := p.writeChangelog(doc, next, date); err != nil {
		return nil, err
	}

	p.step(7, "Commit, tag and push")
	if err := p.commitTagPush(ctx, ws, result); err != nil {
		return nil, err
	}

	p.step(8, "Publish")
	if p.Options.SkipPublish {
		output.PrintInfo(p.Out, "publish skipped")
		return result, nil
	}
	pub := &publish.Publisher{
		Runner:  p.Runner,
		Display: p.Display,
		Command: p.Config.PublishCommand,
		Dir:     p.Dir,
	}
	if err := pub.Run(ctx, ws); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) releaseDate() (string, error) {
	if p.Options.Date == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", p.Options.Date); err != nil {
		return "", errors.NewArgumentError(
			fmt.Sprintf("invalid release date %q, expected YYYY-MM-DD", p.Options.Date))
	}
	return p.Options.Date, nil
}

func (p *Pipeline) preflight() error {
	if err := p.lookPath("git"); err != nil {
		return errors.MissingTool("git")
	}
	if tool := p.publishTool(); tool != "" {
		if err := p.lookPath(tool); err != nil {
			return errors.MissingTool(tool)
		}
	}

	if !git.IsRepository(p.Dir) {
		return errors.NotARepository(p.Dir)
	}

	if !p.Options.AllowDirty {
		clean, err := git.IsClean(p.Dir)
		if err != nil {
			return err
		}
		if !clean {
			return errors.DirtyWorktree()
		}
	}

	if p.Config.Branch != "" {
		branch, err := git.CurrentBranch(p.Dir)
		if err != nil {
			return err
		}
		if branch != p.Config.Branch {
			return errors.WrongBranch(branch, p.Config.Branch)
		}
	}
	return nil
}

// publishTool returns the binary the publish and lockfile steps need,
// or "" when neither step will run.
func (p *Pipeline) publishTool() string {
	if p.Options.SkipPublish && !p.Config.UpdateLockfile {
		return ""
	}
	fields := strings.Fields(p.Config.PublishCommand)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (p *Pipeline) refreshLockfile(ctx context.Context) error {
	if !p.Config.UpdateLockfile {
		output.PrintInfo(p.Out, "lockfile refresh disabled")
		return nil
	}
	return p.Runner.Run(ctx, p.Dir, "cargo", "update", "--workspace")
}

func (p *Pipeline) loadWorkspace(ctx context.Context) (*manifest.Workspace, error) {
	path := filepath.Join(p.Dir, p.Config.Manifest)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.MissingManifest(p.Config.Manifest)
	}
	return manifest.LoadWorkspace(ctx, path)
}

func (p *Pipeline) loadChangelog() (*changelog.Document, error) {
	path := filepath.Join(p.Dir, p.Config.Changelog)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.MissingChangelog(p.Config.Changelog)
	}
	doc, err := changelog.Load(path)
	if err != nil {
		return nil, err
	}
	if err := changelog.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// linkBase resolves the base URL for comparison links: configured repo
// URL first, then the existing footer links, then the remote URL.
func (p *Pipeline) linkBase(doc *changelog.Document) string {
	if p.Config.RepoURL != "" {
		return strings.TrimSuffix(p.Config.RepoURL, "/")
	}
	if base := doc.LinkBase(); base != "" {
		return base
	}
	remote, err := git.RemoteURL(p.Dir, p.Config.Remote)
	if err != nil {
		return ""
	}
	return git.BrowseURL(remote)
}

func (p *Pipeline) writeChangelog(doc *changelog.Document, next semver.Version, date string) error {
	base := p.linkBase(doc)
	if base == "" {
		output.PrintInfo(p.Out, "no repository URL found; comparison links not regenerated")
	}
	if err := changelog.Release(doc, next, date, base); err != nil {
		return err
	}

	rendered, err := changelog.RenderString(doc)
	if err != nil {
		return err
	}
	path := filepath.Join(p.Dir, p.Config.Changelog)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", p.Config.Changelog, err)
	}
	return nil
}

func (p *Pipeline) commitTagPush(ctx context.Context, ws *manifest.Workspace, result *Result) error {
	paths, err := p.stagedPaths(ws)
	if err != nil {
		return err
	}
	if err := git.Add(ctx, p.Runner, p.Dir, paths...); err != nil {
		return err
	}

	message, err := p.commitMessage(result.Next)
	if err != nil {
		return err
	}
	if err := git.Commit(ctx, p.Runner, p.Dir, message); err != nil {
		return err
	}
	if err := git.Tag(ctx, p.Runner, p.Dir, result.Tag, message); err != nil {
		return err
	}

	if p.Options.SkipPush {
		output.PrintInfo(p.Out, "push skipped")
		return nil
	}
	branch := p.Config.Branch
	if branch == "" {
		if branch, err = git.CurrentBranch(p.Dir); err != nil {
			return err
		}
	}
	return git.Push(ctx, p.Runner, p.Dir, p.Config.Remote, branch, result.Tag)
}

// stagedPaths returns the repo-relative paths the release commit stages:
// every workspace manifest, the changelog, and the lockfile when present.
func (p *Pipeline) stagedPaths(ws *manifest.Workspace) ([]string, error) {
	paths := []string{p.Config.Changelog}
	for _, abs := range ws.ManifestPaths() {
		rel, err := filepath.Rel(p.Dir, abs)
		if err != nil {
			return nil, fmt.Errorf("manifest path %s: %w", abs, err)
		}
		paths = append(paths, rel)
	}

	lock := filepath.Join(filepath.Dir(filepath.Join(p.Dir, p.Config.Manifest)), "Cargo.lock")
	if _, err := os.Stat(lock); err == nil {
		rel, err := filepath.Rel(p.Dir, lock)
		if err != nil {
			return nil, fmt.Errorf("lockfile path %s: %w", lock, err)
		}
		paths = append(paths, rel)
	}
	return paths, nil
}

func (p *Pipeline) commitMessage(next semver.Version) (string, error) {
	tmpl, err := template.New("commit_message").Parse(p.Config.CommitMessage)
	if err != nil {
		return "", fmt.Errorf("invalid commit message %q: %w", p.Config.CommitMessage, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Version string }{next.String()}); err != nil {
		return "", fmt.Errorf("expanding commit message %q: %w", p.Config.CommitMessage, err)
	}
	return buf.String(), nil
}

func (p *Pipeline) step(n int, name string) {
	if p.Out == nil {
		p.Out = io.Discard
	}
	output.PrintStepHeader(p.Out, n, totalSteps, name)
}

func (p *Pipeline) printPlan(ws *manifest.Workspace, result *Result) {
	fmt.Fprintf(p.Out, "\nDry run. Release %s would:\n", result.Next)
	fmt.Fprintf(p.Out, "  bump    %s -> %s (%s)\n", result.Previous, result.Next, result.Level)
	for _, abs := range ws.ManifestPaths() {
		if rel, err := filepath.Rel(p.Dir, abs); err == nil {
			fmt.Fprintf(p.Out, "  rewrite %s\n", rel)
		}
	}
	fmt.Fprintf(p.Out, "  rewrite %s\n", p.Config.Changelog)
	fmt.Fprintf(p.Out, "  commit, tag %s, push to %s\n", result.Tag, p.Config.Remote)
	if p.Options.SkipPublish {
		fmt.Fprintf(p.Out, "  publish: skipped\n")
		return
	}
	fmt.Fprintf(p.Out, "  publish %s\n", strings.Join(result.Published, ", "))
}
