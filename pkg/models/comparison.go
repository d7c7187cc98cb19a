package models

import (
	"time"
)

// ComparisonInfo is the size and modification time used to decide whether
// a source and destination already hold the same file
type ComparisonInfo struct {
	// Size in bytes
	Size uint64

	// ModTime is the modification time as reported by the store, without
	// any timezone normalization
	ModTime time.Time
}

// SentinelComparisonInfo is returned when metadata could not be looked up:
// zero size and the minimum timestamp
var SentinelComparisonInfo = ComparisonInfo{}

// Equal reports whether both size and modification time are equal
func (c ComparisonInfo) Equal(other ComparisonInfo) bool {
	return c.Size == other.Size && c.ModTime.Equal(other.ModTime)
}

// SameSize reports whether the sizes are equal, ignoring modification time
func (c ComparisonInfo) SameSize(other ComparisonInfo) bool {
	return c.Size == other.Size
}

// IsSentinel reports whether c is the lookup-failure sentinel
func (c ComparisonInfo) IsSentinel() bool {
	return c.Size == 0 && c.ModTime.IsZero()
}
