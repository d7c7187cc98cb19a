package platform

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// DeviceSeparator separates components of a device path regardless of host OS
const DeviceSeparator = "/"

// NormalizeDevicePath cleans a device path and roots it at "/".
// Backslashes are accepted as separators since device paths are often typed
// on Windows hosts.
func NormalizeDevicePath(p string) string {
	p = strings.ReplaceAll(p, "\\", DeviceSeparator)
	return path.Clean(DeviceSeparator + p)
}

// JoinDevice joins device path elements
func JoinDevice(elem ...string) string {
	return NormalizeDevicePath(path.Join(elem...))
}

// DeviceRel returns target relative to base, both device paths.
// The result uses the device separator and has no leading slash.
func DeviceRel(base, target string) (string, error) {
	base = NormalizeDevicePath(base)
	target = NormalizeDevicePath(target)
	if base == target {
		return ".", nil
	}
	prefix := base
	if prefix != DeviceSeparator {
		prefix += DeviceSeparator
	}
	if !strings.HasPrefix(target, prefix) {
		return "", &PathError{Path: target, Message: "not under " + base}
	}
	return strings.TrimPrefix(target, prefix), nil
}

// DeviceToLocal maps a slash-separated relative device path onto a local root
func DeviceToLocal(localRoot, rel string) string {
	return filepath.Join(localRoot, filepath.FromSlash(rel))
}

// LocalToDevice maps a local relative path onto a device root
func LocalToDevice(deviceRoot, rel string) string {
	return JoinDevice(deviceRoot, filepath.ToSlash(rel))
}

// ResolveUnder maps a device path onto a host directory that mirrors the
// device storage. Paths escaping the root are rejected.
func ResolveUnder(root, devicePath string) (string, error) {
	if err := ValidatePath(devicePath); err != nil {
		return "", err
	}
	for _, part := range strings.Split(strings.ReplaceAll(devicePath, "\\", DeviceSeparator), DeviceSeparator) {
		if part == ".." {
			return "", &PathError{Path: devicePath, Message: "path escapes device root"}
		}
	}
	clean := NormalizeDevicePath(devicePath)
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(clean, DeviceSeparator))), nil
}

// Ext returns the file extension of a device or local path
func Ext(p string) string {
	return path.Ext(strings.ReplaceAll(p, "\\", DeviceSeparator))
}

// ValidatePath checks if a path is usable
func ValidatePath(p string) error {
	if p == "" {
		return &PathError{Path: p, Message: "path is empty"}
	}
	if strings.ContainsRune(p, 0) {
		return &PathError{Path: p, Message: "path contains NUL byte"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(p, char) {
				return &PathError{Path: p, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
