// Package strategy implements the ordered fallback pipeline used to download
// a single file from an unreliable device.
package strategy

import (
	"context"
	"strings"
	"time"

	"github.com/drittich/media-device-copier/internal/platform"
	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/models"
)

// Names of the default strategies
const (
	NameStandard      = "Standard"
	NameStreamRetry   = "StreamRetry"
	NameChunkedRetry  = "ChunkedRetry"
	NameMetadataProbe = "MetadataProbe"
)

// Context is the per-download input shared by every strategy.
// Strategies must not modify it.
type Context struct {
	SourcePath string
	TargetPath string
	// Extension is the lowercased source extension without the dot
	Extension  string
	MediaClass models.MediaClass
	Device     device.Device
}

// NewContext builds the context for downloading src to dst from dev
func NewContext(dev device.Device, src, dst string) *Context {
	ext := strings.ToLower(strings.TrimPrefix(platform.Ext(src), "."))
	return &Context{
		SourcePath: src,
		TargetPath: dst,
		Extension:  ext,
		MediaClass: models.ClassifyExtension(ext),
		Device:     dev,
	}
}

// Func attempts one download. It returns true on success, false when the
// attempt declined without an error, and an error when it failed.
type Func func(ctx context.Context, sc *Context) (bool, error)

// Strategy is a named download attempt preceded by a fixed delay
type Strategy struct {
	Name    string
	Delay   time.Duration
	Execute Func
}

// RawDownload is the strategy body that issues a single raw device download
func RawDownload(ctx context.Context, sc *Context) (bool, error) {
	if err := sc.Device.RawDownload(ctx, sc.SourcePath, sc.TargetPath); err != nil {
		return false, err
	}
	return true, nil
}

// Delayed returns a strategy that waits delay and then issues a raw download
func Delayed(name string, delay time.Duration) Strategy {
	return Strategy{Name: name, Delay: delay, Execute: RawDownload}
}

// DefaultStrategies returns a fresh copy of the default pipeline
func DefaultStrategies() []Strategy {
	return []Strategy{
		Delayed(NameStandard, 0),
		Delayed(NameStreamRetry, 100*time.Millisecond),
		Delayed(NameChunkedRetry, 200*time.Millisecond),
		Delayed(NameMetadataProbe, 500*time.Millisecond),
	}
}
