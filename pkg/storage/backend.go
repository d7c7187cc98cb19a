package storage

import (
	"time"
)

// FileInfo represents metadata about a local file
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// LocalFS is the local filesystem capability used by the transfer engine.
// Paths are host paths.
type LocalFS interface {
	// Exists checks if a file or directory exists
	Exists(path string) (bool, error)

	// Stat returns file metadata
	Stat(path string) (*FileInfo, error)

	// ReadFile returns the content of a file
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or overwrites a file, creating parent directories
	WriteFile(path string, data []byte) error

	// Chtimes sets the access and modification time of a file
	Chtimes(path string, modTime time.Time) error

	// Remove deletes a single file
	Remove(path string) error

	// Rename moves oldPath to newPath, replacing an existing file
	Rename(oldPath, newPath string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(path string) error
}

// Range of modification times a local file can carry. The lower bound is
// the Windows FILETIME epoch, the upper bound the last representable second
// of year 9999.
var (
	MinFileTime = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxFileTime = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

// TimestampInRange reports whether t can be applied to a local file
func TimestampInRange(t time.Time) bool {
	return !t.Before(MinFileTime) && !t.After(MaxFileTime)
}
