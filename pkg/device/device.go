// Package device defines the capability the transfer engine calls into for
// the removable side of a transfer, and adapters implementing it.
package device

import (
	"context"

	"github.com/drittich/media-device-copier/pkg/models"
)

// Device is a removable file store reached through a restricted transfer API.
// All paths are device paths: slash separated and rooted at "/".
type Device interface {
	// IsConnected reports whether the device can currently be reached
	IsConnected(ctx context.Context) bool

	// FileExists reports whether path names a file on the device
	FileExists(ctx context.Context, path string) (bool, error)

	// DirectoryExists reports whether path names a directory on the device
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// GetMetadata returns the size and modification time of a file.
	// Fails with ErrNotFound when the file does not exist.
	GetMetadata(ctx context.Context, path string) (models.ComparisonInfo, error)

	// RawDownload copies a device file to a local path in a single shot
	RawDownload(ctx context.Context, src, dst string) error

	// RawUpload copies a local file to a device path in a single shot
	RawUpload(ctx context.Context, src, dst string) error

	// Delete removes a file from the device
	Delete(ctx context.Context, path string) error

	// ListFiles returns the full device paths of files directly inside dir
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// ListSubdirectories returns the full device paths of directories directly inside dir
	ListSubdirectories(ctx context.Context, dir string) ([]string, error)
}
