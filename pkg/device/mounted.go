package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/drittich/media-device-copier/internal/platform"
	"github.com/drittich/media-device-copier/pkg/models"
)

// Mounted is a device whose storage is visible as a directory tree,
// e.g. an MTP device mounted through gvfs or a camera card in a reader
type Mounted struct {
	rootPath string
	limiter  *Limiter
}

// NewMounted creates a device rooted at a mount point
func NewMounted(rootPath string) (*Mounted, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mount point: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access mount point: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("mount point is not a directory: %s", absPath)
	}

	return &Mounted{rootPath: absPath}, nil
}

// SetBandwidthLimit paces raw transfers to bytesPerSecond. Zero removes the limit.
func (m *Mounted) SetBandwidthLimit(bytesPerSecond int64) {
	m.limiter = NewLimiter(bytesPerSecond)
}

// Root returns the host directory backing the device
func (m *Mounted) Root() string {
	return m.rootPath
}

// IsConnected reports whether the mount point is still present
func (m *Mounted) IsConnected(ctx context.Context) bool {
	info, err := os.Stat(m.rootPath)
	return err == nil && info.IsDir()
}

// FileExists checks if a regular file exists at path
func (m *Mounted) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := m.stat(path)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// DirectoryExists checks if a directory exists at path
func (m *Mounted) DirectoryExists(ctx context.Context, path string) (bool, error) {
	info, err := m.stat(path)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// GetMetadata returns size and modification time
func (m *Mounted) GetMetadata(ctx context.Context, path string) (models.ComparisonInfo, error) {
	info, err := m.stat(path)
	if err != nil {
		return models.SentinelComparisonInfo, err
	}
	if info.IsDir() {
		return models.SentinelComparisonInfo, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return models.ComparisonInfo{Size: uint64(info.Size()), ModTime: info.ModTime()}, nil
}

// RawDownload copies a device file to a local path
func (m *Mounted) RawDownload(ctx context.Context, src, dst string) error {
	fullPath, err := platform.ResolveUnder(m.rootPath, src)
	if err != nil {
		return err
	}
	if err := copyFile(ctx, fullPath, dst, m.limiter); err != nil {
		return m.classify("download", src, err)
	}
	return nil
}

// RawUpload copies a local file to a device path
func (m *Mounted) RawUpload(ctx context.Context, src, dst string) error {
	fullPath, err := platform.ResolveUnder(m.rootPath, dst)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return m.classify("upload", dst, err)
	}
	if err := copyFile(ctx, src, fullPath, m.limiter); err != nil {
		return m.classify("upload", dst, err)
	}
	return nil
}

// Delete removes a file from the device
func (m *Mounted) Delete(ctx context.Context, path string) error {
	fullPath, err := platform.ResolveUnder(m.rootPath, path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// ListFiles returns the files directly inside dir, sorted by name
func (m *Mounted) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return m.list(dir, false)
}

// ListSubdirectories returns the directories directly inside dir, sorted by name
func (m *Mounted) ListSubdirectories(ctx context.Context, dir string) ([]string, error) {
	return m.list(dir, true)
}

func (m *Mounted) list(dir string, dirs bool) ([]string, error) {
	fullPath, err := platform.ResolveUnder(m.rootPath, dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() != dirs {
			continue
		}
		paths = append(paths, platform.JoinDevice(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *Mounted) stat(path string) (fs.FileInfo, error) {
	fullPath, err := platform.ResolveUnder(m.rootPath, path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info, nil
}

// classify maps I/O failures onto the device error taxonomy: missing files
// become ErrNotFound, anything else a general protocol error
func (m *Mounted) classify(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", op, path, ErrNotFound)
	}
	return &ProtocolError{Op: op, Path: path, Code: CodeGeneralError, Err: err}
}

// copyFile writes src to a temporary sibling of dst and renames it into place,
// so a failed copy leaves an existing dst untouched
func copyFile(ctx context.Context, src, dst string, limiter *Limiter) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".part-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, throttle(ctx, srcFile, limiter)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
