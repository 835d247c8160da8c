package publish

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/shipit/internal/manifest"
	"github.com/ariel-frischer/shipit/internal/semver"
	"github.com/ariel-frischer/shipit/internal/testutil"
)

func workspace(members ...*manifest.Manifest) *manifest.Workspace {
	return &manifest.Workspace{
		Root:    members[0],
		Members: members,
		Version: semver.MustParse("1.2.0"),
	}
}

func member(name string, deps ...string) *manifest.Manifest {
	return &manifest.Manifest{Name: name, Version: "1.2.0", Publish: true, PathDeps: deps}
}

func TestPublisher_Run(t *testing.T) {
	t.Parallel()

	t.Run("publishes members in dependency order", func(t *testing.T) {
		t.Parallel()

		runner := &testutil.RecordingRunner{}
		p := &Publisher{
			Runner:  runner,
			Command: "cargo publish -p {{.Package}}",
			Dir:     "/work",
		}

		ws := workspace(member("widget", "widget-core"), member("widget-core"))
		require.NoError(t, p.Run(t.Context(), ws))

		assert.Equal(t, []string{
			"cargo publish -p widget-core",
			"cargo publish -p widget",
		}, runner.CommandLines())
		for _, c := range runner.Calls() {
			assert.Equal(t, "/work", c.Dir)
		}
	})

	t.Run("skips members opted out of publishing", func(t *testing.T) {
		t.Parallel()

		runner := &testutil.RecordingRunner{}
		p := &Publisher{Runner: runner, Command: "cargo publish -p {{.Package}}"}

		bench := member("widget-bench", "widget")
		bench.Publish = false
		ws := workspace(member("widget"), bench)

		require.NoError(t, p.Run(t.Context(), ws))
		assert.Equal(t, []string{"cargo publish -p widget"}, runner.CommandLines())
	})

	t.Run("dry run appends flag", func(t *testing.T) {
		t.Parallel()

		runner := &testutil.RecordingRunner{}
		p := &Publisher{Runner: runner, Command: "cargo publish -p {{.Package}}", DryRun: true}

		require.NoError(t, p.Run(t.Context(), workspace(member("widget"))))
		assert.Equal(t, []string{"cargo publish -p widget --dry-run"}, runner.CommandLines())
	})

	t.Run("first failure halts remaining members", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("crates.io rejected the upload")
		runner := &testutil.RecordingRunner{
			FailOn: map[string]error{"cargo publish -p widget-core": boom},
		}
		p := &Publisher{Runner: runner, Command: "cargo publish -p {{.Package}}"}

		ws := workspace(member("widget", "widget-core"), member("widget-core"))
		err := p.Run(t.Context(), ws)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "widget-core")

		// The dependent member was never attempted.
		assert.Equal(t, []string{"cargo publish -p widget-core"}, runner.CommandLines())
	})

	t.Run("custom publish command", func(t *testing.T) {
		t.Parallel()

		runner := &testutil.RecordingRunner{}
		p := &Publisher{Runner: runner, Command: "cargo release publish --package {{.Package}} --no-confirm"}

		require.NoError(t, p.Run(t.Context(), workspace(member("widget"))))
		assert.Equal(t, []string{"cargo release publish --package widget --no-confirm"}, runner.CommandLines())
	})

	t.Run("invalid template", func(t *testing.T) {
		t.Parallel()

		p := &Publisher{Runner: &testutil.RecordingRunner{}, Command: "cargo publish {{.Package"}
		err := p.Run(t.Context(), workspace(member("widget")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish command")
	})

	t.Run("command expanding to nothing", func(t *testing.T) {
		t.Parallel()

		p := &Publisher{Runner: &testutil.RecordingRunner{}, Command: "  "}
		err := p.Run(t.Context(), workspace(member("widget")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expanded to nothing")
	})
}

func TestPublisher_Plan(t *testing.T) {
	t.Parallel()

	p := &Publisher{}
	ws := workspace(member("widget", "widget-core"), member("widget-core"))

	order, err := p.Plan(ws)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, "widget-core", order[0].Name)
	assert.Equal(t, "widget", order[1].Name)
}
