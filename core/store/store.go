package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Store provides the on-disk layout of the font catalog: one directory per
// family under a root, a manifest file per directory, variant binaries named
// <handle>.<format>, and derived previews alongside them.
type Store struct {
	fs afero.Fs
}

// New creates a Store over the given filesystem.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Fs exposes the underlying filesystem for components that stream file
// contents (downloads, uploads) through the same abstraction.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// FamilyDir returns the canonical directory for a family slug.
func (s *Store) FamilyDir(root, slug string) string {
	return filepath.Join(root, slug)
}

// VariantPath returns the canonical path of a variant binary.
func (s *Store) VariantPath(dir, handle, format string) string {
	return filepath.Join(dir, handle+"."+format)
}

// ManifestPath returns the path of the family manifest inside dir.
func (s *Store) ManifestPath(dir, specFile string) string {
	return filepath.Join(dir, specFile)
}

// PrefixedPath returns the preview-prefixed sibling of path:
// dir/base.ext becomes dir/prefix_base.ext.
func (s *Store) PrefixedPath(path, prefix string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, prefix+"_"+base+ext)
}

// Exists reports whether a regular file exists at path. This is the
// skip-if-exists predicate every pipeline stage relies on: once an artifact
// exists at its canonical path, no stage regenerates it.
func (s *Store) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether a directory exists at path.
func (s *Store) DirExists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDir creates dir and any missing parents.
func (s *Store) EnsureDir(dir string) error {
	return s.fs.MkdirAll(dir, 0o755)
}

// RemoveAll deletes dir recursively.
func (s *Store) RemoveAll(dir string) error {
	return s.fs.RemoveAll(dir)
}

// ReadFile reads the full contents of path.
func (s *Store) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// WriteFile writes data to path, truncating any existing file.
func (s *Store) WriteFile(path string, data []byte) error {
	return afero.WriteFile(s.fs, path, data, 0o644)
}

// SubDirs lists the immediate subdirectories of root.
func (s *Store) SubDirs(root string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

// Walk enumerates all regular files under root with the given extension
// (without the dot), excluding files whose base name starts with
// excludePrefix. Used by preview generation to find source fonts while
// skipping previews of previews.
func (s *Store) Walk(root, ext, excludePrefix string) ([]string, error) {
	var files []string
	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) != "."+ext {
			return nil
		}
		if excludePrefix != "" && strings.HasPrefix(filepath.Base(path), excludePrefix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
