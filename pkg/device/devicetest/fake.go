// Package devicetest provides an in-memory device for tests.
package devicetest

import (
	"context"
	"fmt"
	"os"
	pathpkg "path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/drittich/media-device-copier/internal/platform"
	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/models"
)

type file struct {
	data    []byte
	modTime time.Time
}

// Fake is an in-memory device.Device. Failures can be scripted per operation
// and every call is counted.
type Fake struct {
	mu    sync.Mutex
	files map[string]file
	dirs  map[string]bool

	Disconnected bool

	// DownloadErrors are returned, in order, by successive RawDownload calls
	// before downloads start succeeding. A nil entry succeeds.
	DownloadErrors []error
	// UploadErr fails every RawUpload
	UploadErr error
	// DeleteErr fails every Delete
	DeleteErr error
	// MetadataErr fails every GetMetadata
	MetadataErr error
	// UploadModTime is the time the device stamps on uploaded files.
	// Zero means "now".
	UploadModTime time.Time

	DownloadCalls int
	UploadCalls   int
	DeleteCalls   int
	MetadataCalls int
}

// NewFake creates an empty connected device with a root directory
func NewFake() *Fake {
	return &Fake{
		files: make(map[string]file),
		dirs:  map[string]bool{"/": true},
	}
}

// AddFile places a file on the device, creating parent directories
func (f *Fake) AddFile(path string, data []byte, modTime time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = platform.NormalizeDevicePath(path)
	f.files[path] = file{data: append([]byte(nil), data...), modTime: modTime}
	f.addParents(path)
}

// AddDir creates a directory and its parents
func (f *Fake) AddDir(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path = platform.NormalizeDevicePath(path)
	f.dirs[path] = true
	f.addParents(path)
}

// Content returns the bytes of a device file
func (f *Fake) Content(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl, ok := f.files[platform.NormalizeDevicePath(path)]
	return fl.data, ok
}

func (f *Fake) addParents(path string) {
	for dir := pathpkg.Dir(path); ; dir = pathpkg.Dir(dir) {
		f.dirs[dir] = true
		if dir == "/" {
			return
		}
	}
}

func (f *Fake) IsConnected(ctx context.Context) bool {
	return !f.Disconnected
}

func (f *Fake) FileExists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[platform.NormalizeDevicePath(path)]
	return ok, nil
}

func (f *Fake) DirectoryExists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirs[platform.NormalizeDevicePath(path)], nil
}

func (f *Fake) GetMetadata(ctx context.Context, path string) (models.ComparisonInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MetadataCalls++
	if f.MetadataErr != nil {
		return models.SentinelComparisonInfo, f.MetadataErr
	}
	fl, ok := f.files[platform.NormalizeDevicePath(path)]
	if !ok {
		return models.SentinelComparisonInfo, fmt.Errorf("%s: %w", path, device.ErrNotFound)
	}
	return models.ComparisonInfo{Size: uint64(len(fl.data)), ModTime: fl.modTime}, nil
}

func (f *Fake) RawDownload(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := f.DownloadCalls
	f.DownloadCalls++
	if call < len(f.DownloadErrors) && f.DownloadErrors[call] != nil {
		return f.DownloadErrors[call]
	}
	fl, ok := f.files[platform.NormalizeDevicePath(src)]
	if !ok {
		return fmt.Errorf("download %s: %w", src, device.ErrNotFound)
	}
	return os.WriteFile(dst, fl.data, 0644)
}

func (f *Fake) RawUpload(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UploadCalls++
	if f.UploadErr != nil {
		return f.UploadErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	modTime := f.UploadModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}
	dst = platform.NormalizeDevicePath(dst)
	f.files[dst] = file{data: data, modTime: modTime}
	f.addParents(dst)
	return nil
}

func (f *Fake) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	path = platform.NormalizeDevicePath(path)
	if _, ok := f.files[path]; !ok {
		return fmt.Errorf("delete %s: %w", path, device.ErrNotFound)
	}
	delete(f.files, path)
	return nil
}

func (f *Fake) ListFiles(ctx context.Context, dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dir = platform.NormalizeDevicePath(dir)
	if !f.dirs[dir] {
		return nil, fmt.Errorf("%s: %w", dir, device.ErrNotFound)
	}
	var out []string
	for p := range f.files {
		if parentOf(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *Fake) ListSubdirectories(ctx context.Context, dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dir = platform.NormalizeDevicePath(dir)
	if !f.dirs[dir] {
		return nil, fmt.Errorf("%s: %w", dir, device.ErrNotFound)
	}
	var out []string
	for p := range f.dirs {
		if p != dir && parentOf(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func parentOf(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

var _ device.Device = (*Fake)(nil)
