// Package publish runs the configured publish command for each publishable
// workspace member, in dependency order.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/ariel-frischer/shipit/internal/command"
	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/progress"
)

// Publisher executes the publish command once per member. Members are
// published sequentially so a registry sees each dependency before its
// dependents.
type Publisher struct {
	// Runner executes the publish subprocesses.
	Runner command.Runner
	// Display shows per-member progress. May be nil.
	Display *progress.Display
	// Command is the publish command template. {{.Package}} expands to
	// the member name.
	Command string
	// Dir is the working directory commands run in.
	Dir string
	// DryRun appends --dry-run to every publish command.
	DryRun bool
}

// commandData is the template context for the publish command.
type commandData struct {
	Package string
}

// Plan returns the members that would be published, in publish order.
func (p *Publisher) Plan(ws *manifest.Workspace) ([]*manifest.Manifest, error) {
	return ws.PublishOrder()
}

// Run publishes every publishable member of ws in dependency order.
// The first failure stops the run; members after it are not attempted.
func (p *Publisher) Run(ctx context.Context, ws *manifest.Workspace) error {
	order, err := ws.PublishOrder()
	if err != nil {
		return err
	}

	for _, m := range order {
		argv, err := p.commandFor(m.Name)
		if err != nil {
			return err
		}

		p.start(fmt.Sprintf("Publishing %s", m.Name))
		if err := p.Runner.Run(ctx, p.Dir, argv[0], argv[1:]...); err != nil {
			p.fail(fmt.Sprintf("Publishing %s failed", m.Name))
			return fmt.Errorf("publishing %s: %w", m.Name, err)
		}
		p.complete(fmt.Sprintf("Published %s %s", m.Name, ws.Version))
	}
	return nil
}

// commandFor expands the command template for a member and splits it into
// argv. The template must produce at least one token.
func (p *Publisher) commandFor(name string) ([]string, error) {
	tmpl, err := template.New("publish_command").Parse(p.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid publish command %q: %w", p.Command, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, commandData{Package: name}); err != nil {
		return nil, fmt.Errorf("expanding publish command %q: %w", p.Command, err)
	}

	argv := strings.Fields(buf.String())
	if len(argv) == 0 {
		return nil, fmt.Errorf("publish command %q expanded to nothing", p.Command)
	}
	if p.DryRun {
		argv = append(argv, "--dry-run")
	}
	return argv, nil
}

func (p *Publisher) start(label string) {
	if p.Display != nil {
		p.Display.Start(label)
	}
}

func (p *Publisher) complete(detail string) {
	if p.Display != nil {
		p.Display.Complete(detail)
	}
}

func (p *Publisher) fail(detail string) {
	if p.Display != nil {
		p.Display.Fail(detail)
	}
}
