package cli

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/shipit/internal/changelog"
)

var (
	changelogLastFlag  int
	changelogPlainFlag bool
	changelogYAMLFlag  bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "View changelog entries",
	Long: `View entries from the project changelog.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry count.

Examples:
  shipit changelog              # Show 5 most recent entries
  shipit changelog v1.2.0       # Show all entries for version 1.2.0
  shipit changelog 1.2.0        # Same (v prefix optional)
  shipit changelog unreleased   # Show unreleased changes
  shipit changelog --last 10    # Show 10 most recent entries
  shipit changelog --yaml       # Dump entries as YAML
  shipit changelog --plain      # Plain output (no colors/icons)`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runChangelogView,
}

func init() {
	changelogCmd.GroupID = GroupInspection
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of entries to show")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	changelogCmd.Flags().BoolVar(&changelogYAMLFlag, "yaml", false, "Dump the selected entries as YAML")
}

func runChangelogView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := workDir()
	if err != nil {
		return err
	}

	doc, err := changelog.Load(filepath.Join(dir, cfg.Changelog))
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{Plain: changelogPlainFlag}
	if len(args) == 1 {
		return showVersion(doc, args[0], cmd, opts)
	}
	return showLastEntries(doc, changelogLastFlag, cmd, opts)
}

func showVersion(doc *changelog.Document, version string, cmd *cobra.Command, opts changelog.FormatOptions) error {
	section, err := doc.GetSection(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range doc.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	if changelogYAMLFlag {
		return dumpYAML(cmd, []*changelog.Section{section})
	}
	return changelog.FormatSection(section, cmd.OutOrStdout(), opts)
}

func showLastEntries(doc *changelog.Document, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := doc.LastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if changelogYAMLFlag {
		return dumpEntriesYAML(cmd, entries)
	}
	return changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts)
}

// yamlSection is the YAML projection of a changelog section.
type yamlSection struct {
	Version string              `yaml:"version"`
	Date    string              `yaml:"date,omitempty"`
	Changes map[string][]string `yaml:"changes"`
}

func dumpYAML(cmd *cobra.Command, sections []*changelog.Section) error {
	out := make([]yamlSection, 0, len(sections))
	for _, s := range sections {
		changes := map[string][]string{}
		for _, e := range s.Entries() {
			changes[e.Category] = append(changes[e.Category], e.Text)
		}
		out = append(out, yamlSection{Version: s.Version, Date: s.Date, Changes: changes})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// yamlEntry is the YAML projection of a single changelog entry.
type yamlEntry struct {
	Version  string `yaml:"version"`
	Category string `yaml:"category"`
	Text     string `yaml:"text"`
}

func dumpEntriesYAML(cmd *cobra.Command, entries []changelog.Entry) error {
	out := make([]yamlEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, yamlEntry{Version: e.Version, Category: e.Category, Text: e.Text})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
