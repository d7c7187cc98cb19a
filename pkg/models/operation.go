package models

import (
	"fmt"
	"strings"
)

// Direction defines which way a file travels between the device and the local filesystem
type Direction string

const (
	// DirectionDownload copies from the device to the local filesystem
	DirectionDownload Direction = "download"
	// DirectionUpload copies from the local filesystem to the device
	DirectionUpload Direction = "upload"
)

// ParseDirection parses a direction name, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionDownload:
		return DirectionDownload, nil
	case DirectionUpload:
		return DirectionUpload, nil
	default:
		return "", fmt.Errorf("invalid direction: %q (valid: download, upload)", s)
	}
}

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionDownload || d == DirectionUpload
}

// TransferRequest describes a single-file transfer
// Directory recursion happens before requests are built; one request maps to one file.
type TransferRequest struct {
	// Direction of the transfer
	Direction Direction

	// SourcePath is a device path for downloads and a local path for uploads
	SourcePath string

	// TargetPath is a local path for downloads and a device path for uploads
	TargetPath string

	// SkipExisting skips the transfer when the destination already matches the source
	SkipExisting bool

	// IsMove deletes the source after a successful transfer
	IsMove bool
}

// Validate checks if the request is well formed
func (r TransferRequest) Validate() error {
	if !r.Direction.Valid() {
		return &ValidationError{Field: "Direction", Message: fmt.Sprintf("unknown direction %q", r.Direction)}
	}
	if r.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if r.TargetPath == "" {
		return &ValidationError{Field: "TargetPath", Message: "target path is required"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
