package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// member builds an in-memory manifest for ordering tests.
func member(name string, publish bool, pathDeps ...string) *Manifest {
	return &Manifest{
		Path:     name + "/Cargo.toml",
		Name:     name,
		Version:  "1.0.0",
		Publish:  publish,
		PathDeps: pathDeps,
	}
}

func names(order []*Manifest) []string {
	out := make([]string, len(order))
	for i, m := range order {
		out[i] = m.Name
	}
	return out
}

func TestPublishOrder(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		members  []*Manifest
		expected []string
	}{
		"dependency before dependent": {
			members: []*Manifest{
				member("widget", true, "widget-macro"),
				member("widget-macro", true),
			},
			expected: []string{"widget-macro", "widget"},
		},
		"chain": {
			members: []*Manifest{
				member("app", true, "core"),
				member("core", true, "base"),
				member("base", true),
			},
			expected: []string{"base", "core", "app"},
		},
		"independent members sort alphabetically": {
			members: []*Manifest{
				member("zeta", true),
				member("alpha", true),
			},
			expected: []string{"alpha", "zeta"},
		},
		"publish opt-out is skipped": {
			members: []*Manifest{
				member("widget", true, "widget-macro"),
				member("widget-macro", true),
				member("widget-bench", false, "widget"),
			},
			expected: []string{"widget-macro", "widget"},
		},
		"path dep outside the workspace is ignored": {
			members: []*Manifest{
				member("widget", true, "vendored-thing"),
			},
			expected: []string{"widget"},
		},
		"diamond": {
			members: []*Manifest{
				member("top", true, "left", "right"),
				member("left", true, "base"),
				member("right", true, "base"),
				member("base", true),
			},
			expected: []string{"base", "left", "right", "top"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := &Workspace{Root: tt.members[0], Members: tt.members}
			order, err := ws.PublishOrder()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(order))
		})
	}
}

func TestPublishOrder_Cycle(t *testing.T) {
	t.Parallel()

	ws := &Workspace{
		Members: []*Manifest{
			member("a", true, "b"),
			member("b", true, "a"),
		},
	}

	_, err := ws.PublishOrder()
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "dependency cycle")
	assert.Contains(t, err.Error(), "a, b")
}
