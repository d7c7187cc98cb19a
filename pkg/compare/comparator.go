package compare

import (
	"context"

	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/models"
	"github.com/drittich/media-device-copier/pkg/storage"
)

// Reasons recorded on a Comparison
const (
	ReasonSizeAndTimeMatch  = "size and time match"
	ReasonSizesMatch        = "sizes match"
	ReasonSizesDiffer       = "sizes differ"
	ReasonTimesDiffer       = "modification times differ"
	ReasonSourceUnavailable = "source metadata unavailable"
	ReasonTargetUnavailable = "target metadata unavailable"
)

// Comparison holds the result of comparing a source with an existing destination
type Comparison struct {
	Source   models.ComparisonInfo
	Target   models.ComparisonInfo
	SourceOK bool
	TargetOK bool
	Match    bool
	Reason   string
}

// SizesAndTimesMatch decides whether an existing destination already holds the source.
// Downloads require size and modification time to be equal. Uploads compare size
// only, since devices stamp their own time on uploaded files.
func SizesAndTimesMatch(direction models.Direction, source, target models.ComparisonInfo) bool {
	if direction == models.DirectionUpload {
		return source.SameSize(target)
	}
	return source.Equal(target)
}

// Comparator looks up both sides of a request and compares them
type Comparator struct {
	device device.Device
	local  storage.LocalFS
}

// NewComparator creates a comparator over a device and the local filesystem
func NewComparator(dev device.Device, local storage.LocalFS) *Comparator {
	return &Comparator{device: dev, local: local}
}

// Compare compares the source and target of req.
// A failed lookup never returns an error: it yields the sentinel and a non-match.
func (c *Comparator) Compare(ctx context.Context, req models.TransferRequest) *Comparison {
	var cmp Comparison
	if req.Direction == models.DirectionUpload {
		cmp.Source, cmp.SourceOK = LocalInfo(c.local, req.SourcePath)
		cmp.Target, cmp.TargetOK = DeviceInfo(ctx, c.device, req.TargetPath)
	} else {
		cmp.Source, cmp.SourceOK = DeviceInfo(ctx, c.device, req.SourcePath)
		cmp.Target, cmp.TargetOK = LocalInfo(c.local, req.TargetPath)
	}

	switch {
	case !cmp.SourceOK:
		cmp.Reason = ReasonSourceUnavailable
	case !cmp.TargetOK:
		cmp.Reason = ReasonTargetUnavailable
	case !cmp.Source.SameSize(cmp.Target):
		cmp.Reason = ReasonSizesDiffer
	case SizesAndTimesMatch(req.Direction, cmp.Source, cmp.Target):
		cmp.Match = true
		if req.Direction == models.DirectionUpload {
			cmp.Reason = ReasonSizesMatch
		} else {
			cmp.Reason = ReasonSizeAndTimeMatch
		}
	default:
		cmp.Reason = ReasonTimesDiffer
	}
	return &cmp
}

// DeviceInfo returns the metadata of a device file, or the sentinel and false
func DeviceInfo(ctx context.Context, dev device.Device, path string) (models.ComparisonInfo, bool) {
	info, err := dev.GetMetadata(ctx, path)
	if err != nil {
		return models.SentinelComparisonInfo, false
	}
	return info, true
}

// LocalInfo returns the size and modification time of a local file, or the sentinel and false
func LocalInfo(local storage.LocalFS, path string) (models.ComparisonInfo, bool) {
	info, err := local.Stat(path)
	if err != nil || info.IsDir {
		return models.SentinelComparisonInfo, false
	}
	return models.ComparisonInfo{Size: uint64(info.Size), ModTime: info.ModTime}, true
}
