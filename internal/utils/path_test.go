package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := ResolvePath("")
		assert.Error(t, err)
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got, err := ResolvePath("foo/../bar")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "bar", filepath.Base(got))
	})
}

func TestNormPath(t *testing.T) {
	assert.Equal(t, "a/b/c.fs", NormPath(filepath.Join("a", "b", "c.fs")))
	assert.Equal(t, "a/b", NormPath("a//b/"))
}

func TestPathContains(t *testing.T) {
	tests := []struct {
		parent string
		child  string
		want   bool
	}{
		{"/work/refs", "/work/refs", true},
		{"/work/refs", "/work/refs/std/math.fs", true},
		{"/work/refs", "/work/projects/gear", false},
		{"/work/refs", "/work/refs-other", false},
		{"/work/refs", "/work", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PathContains(tt.parent, tt.child), "%s vs %s", tt.parent, tt.child)
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Gear_Generator", SanitizeName("Gear: Generator"))
	assert.Equal(t, "a_b_c", SanitizeName("a/b\\c"))
	assert.Equal(t, "unnamed", SanitizeName("***"))
	assert.Equal(t, "spaced_out", SanitizeName("  spaced   out  "))
}
