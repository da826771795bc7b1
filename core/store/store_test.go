package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	return New(afero.NewMemMapFs())
}

func TestStore_Paths(t *testing.T) {
	s := newMemStore(t)

	dir := s.FamilyDir("/fonts", "example-sans")
	assert.Equal(t, filepath.Join("/fonts", "example-sans"), dir)

	assert.Equal(t, filepath.Join(dir, "example-sans-regular.woff"),
		s.VariantPath(dir, "example-sans-regular", "woff"))

	assert.Equal(t, filepath.Join(dir, "font_family.json"),
		s.ManifestPath(dir, "font_family.json"))
}

func TestStore_PrefixedPath(t *testing.T) {
	s := newMemStore(t)

	tests := []struct {
		name     string
		path     string
		prefix   string
		expected string
	}{
		{
			name:     "woff file",
			path:     "/fonts/fam/regular.woff",
			prefix:   "preview",
			expected: "/fonts/fam/preview_regular.woff",
		},
		{
			name:     "woff2 file",
			path:     "/fonts/fam/bold.woff2",
			prefix:   "preview",
			expected: "/fonts/fam/preview_bold.woff2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), s.PrefixedPath(filepath.FromSlash(tt.path), tt.prefix))
		})
	}
}

func TestStore_ExistencePredicates(t *testing.T) {
	s := newMemStore(t)

	require.NoError(t, s.EnsureDir("/fonts/fam"))
	require.NoError(t, s.WriteFile("/fonts/fam/a.woff", []byte("binary")))

	assert.True(t, s.Exists("/fonts/fam/a.woff"))
	assert.False(t, s.Exists("/fonts/fam/missing.woff"))
	// A directory is not a file.
	assert.False(t, s.Exists("/fonts/fam"))

	assert.True(t, s.DirExists("/fonts/fam"))
	assert.False(t, s.DirExists("/fonts/other"))
	assert.False(t, s.DirExists("/fonts/fam/a.woff"))
}

func TestStore_RemoveAll(t *testing.T) {
	s := newMemStore(t)

	require.NoError(t, s.EnsureDir("/fonts/fam"))
	require.NoError(t, s.WriteFile("/fonts/fam/a.woff", []byte("binary")))

	require.NoError(t, s.RemoveAll("/fonts/fam"))

	assert.False(t, s.DirExists("/fonts/fam"))
	assert.False(t, s.Exists("/fonts/fam/a.woff"))
}

func TestStore_SubDirs(t *testing.T) {
	s := newMemStore(t)

	require.NoError(t, s.EnsureDir("/fonts/alpha"))
	require.NoError(t, s.EnsureDir("/fonts/beta"))
	require.NoError(t, s.WriteFile("/fonts/stray.txt", []byte("x")))

	dirs, err := s.SubDirs("/fonts")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join("/fonts", "alpha"),
		filepath.Join("/fonts", "beta"),
	}, dirs)
}

func TestStore_Walk(t *testing.T) {
	s := newMemStore(t)

	require.NoError(t, s.EnsureDir("/fonts/fam"))
	require.NoError(t, s.WriteFile("/fonts/fam/regular.woff", []byte("a")))
	require.NoError(t, s.WriteFile("/fonts/fam/bold.woff", []byte("b")))
	require.NoError(t, s.WriteFile("/fonts/fam/preview_regular.woff", []byte("c")))
	require.NoError(t, s.WriteFile("/fonts/fam/regular.ttf", []byte("d")))

	files, err := s.Walk("/fonts", "woff", "preview_")
	require.NoError(t, err)

	// Previews of previews and other formats are excluded.
	assert.ElementsMatch(t, []string{
		filepath.Join("/fonts", "fam", "regular.woff"),
		filepath.Join("/fonts", "fam", "bold.woff"),
	}, files)
}
