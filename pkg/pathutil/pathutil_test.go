package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		depth int
		want  string
	}{
		{name: "root file depth 1", path: "top.go", depth: 1, want: RootKey},
		{name: "root file large depth", path: "top.go", depth: 3, want: RootKey},
		{name: "depth zero aggregates to root", path: "a/b/c.go", depth: 0, want: RootKey},
		{name: "negative depth aggregates to root", path: "a/b/c.go", depth: -1, want: RootKey},
		{name: "depth one", path: "a/b/c.go", depth: 1, want: "a"},
		{name: "depth two", path: "a/b/c.go", depth: 2, want: "a/b"},
		{name: "depth beyond dirs keeps full dir", path: "a/b/c.go", depth: 5, want: "a/b"},
		{name: "leading slash trimmed", path: "/a/b/c.go", depth: 2, want: "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, DirKey(tt.path, tt.depth))
		})
	}
}
