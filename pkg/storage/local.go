package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OS is the LocalFS backed by the host filesystem
type OS struct{}

// NewOS creates a host filesystem capability
func NewOS() *OS {
	return &OS{}
}

// Exists checks if a file or directory exists
func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns file metadata
func (OS) Stat(path string) (*FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// ReadFile returns the content of a file
func (OS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// WriteFile creates or overwrites a file
func (OS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Chtimes sets both access and modification time to modTime
func (OS) Chtimes(path string, modTime time.Time) error {
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}

// Remove deletes a single file
func (OS) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Rename moves oldPath to newPath, replacing an existing file
func (OS) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (OS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

var _ LocalFS = OS{}
