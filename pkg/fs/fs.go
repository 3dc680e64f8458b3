// Package fs is the filesystem seam used when outline documents are read from
// and written back to disk.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the tools need
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] and atomic renames
//   - [Locker]: advisory flock(2) locks guarding a document during rewrite
//   - [Chaos]: test wrapper that injects seeded filesystem faults
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("notes.org")
//	if err != nil {
//	    return err
//	}
//
//	// Replace the file in one step; readers never see a partial write.
//	err = fsys.WriteFileAtomic("notes.org", out, 0o644)
package fs

import (
	"io"
	"os"
)

// File is an open file descriptor.
//
// Implementations must behave like [os.File], including that [File.Fd]
// returns a descriptor usable with flock until the file is closed.
type File interface {
	io.ReadWriteCloser

	// Fd returns the file descriptor. See [os.File.Fd].
	Fd() uintptr

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines the filesystem operations used by the document tools.
//
// Paths use OS semantics (like the os package and path/filepath), not the
// slash-separated paths of the standard library io/fs package.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FS interface {
	// OpenFile opens a file with specified flags and permissions. See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces path with data so that readers see either the
	// old or the new content, never a mix. New files get perm; existing
	// files keep their mode.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove]. Lock files
	// are removed through it when their lock is released.
	Remove(path string) error
}

// Compile-time interface check.
var _ File = (*os.File)(nil)
