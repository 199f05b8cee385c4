package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing/fstest"
)

// FS is the host filesystem implementation.
var FS FileSystem = DefaultFS{}

// MkdirAll calls FS.MkdirAll
func MkdirAll(path string, perm os.FileMode) error { return FS.MkdirAll(path, perm) }

// Exists returns if name exists on fsys.
func Exists(fsys FileSystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// FileSystem is abstraction for filesystem.
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	fs.StatFS
}

var _ FileSystem = DefaultFS{}
var _ FileSystem = fakeFS{}

// DefaultFS is the default OS implementation of FileSystem.
type DefaultFS struct{}

// Open implements FileSystem
func (DefaultFS) Open(name string) (fs.File, error) { return os.Open(name) }

// Stat implements FileSystem
func (DefaultFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// MkdirAll implements FileSystem
func (DefaultFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

// FakeFS returns a mock FileSystem containing files.
// Files are specified with host paths and are created with fake contents.
func FakeFS(files ...string) FileSystem {
	m := fstest.MapFS{}
	for _, f := range files {
		m[fakePath(f)] = &fstest.MapFile{Data: []byte("fake file - " + f)}
	}
	return fakeFS{m: m}
}

type fakeFS struct{ m fstest.MapFS }

func fakePath(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "/")
}

// Open implements FileSystem
func (f fakeFS) Open(name string) (fs.File, error) { return f.m.Open(fakePath(name)) }

// Stat implements FileSystem
func (f fakeFS) Stat(name string) (fs.FileInfo, error) { return f.m.Stat(fakePath(name)) }

// MkdirAll implements FileSystem
func (fakeFS) MkdirAll(path string, perm fs.FileMode) error { return nil }
