package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// Provider abstracts the filesystem operations the pipeline needs: stat
// for existence and quota checks, reads for loading datasets, and writes
// for charts, reports, and scaffolded config files.
//
// Stat and Open report missing paths with errors that satisfy
// errors.Is(err, fs.ErrNotExist) regardless of the backing store.
type Provider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Open opens the file at the given path for streaming reads
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads the entire file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the given path, creating or truncating it
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates the directory at the given path along with any
	// missing parents
	MkdirAll(path string, perm fs.FileMode) error
}
