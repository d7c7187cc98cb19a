// Package transfer reconciles and transfers single files between a device
// and the local filesystem, and runs batches of such transfers.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/drittich/media-device-copier/pkg/compare"
	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/diagnostics"
	"github.com/drittich/media-device-copier/pkg/logging"
	"github.com/drittich/media-device-copier/pkg/models"
	"github.com/drittich/media-device-copier/pkg/storage"
	"github.com/drittich/media-device-copier/pkg/strategy"
)

// Config configures an engine
type Config struct {
	// Pipeline configures the download strategy pipeline. When Pipeline.Sink
	// is nil, attempts are logged at debug level through Logger.
	Pipeline strategy.Config

	// Logger receives transfer events. Nil disables logging.
	Logger logging.Logger
}

// Engine executes transfer requests against one device
type Engine struct {
	device     device.Device
	local      storage.LocalFS
	comparator *compare.Comparator
	pipeline   *strategy.Pipeline
	logger     logging.Logger
}

// NewEngine creates a new transfer engine
func NewEngine(dev device.Device, local storage.LocalFS, config Config) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	pipelineConfig := config.Pipeline
	if pipelineConfig.Sink == nil {
		pipelineConfig.Sink = diagnostics.NewLogSink(logger)
	}

	return &Engine{
		device:     dev,
		local:      local,
		comparator: compare.NewComparator(dev, local),
		pipeline:   strategy.NewPipeline(pipelineConfig),
		logger:     logger,
	}
}

// Pipeline returns the download strategy pipeline
func (e *Engine) Pipeline() *strategy.Pipeline {
	return e.pipeline
}

// Transfer executes a single request.
// Only validation errors, a disconnected device and failed uploads are returned as
// errors; every other failure is absorbed into the outcome.
func (e *Engine) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !e.device.IsConnected(ctx) {
		return nil, device.ErrNotConnected
	}

	status := models.StatusCopied
	if req.SkipExisting && e.targetExists(ctx, req) {
		cmp := e.comparator.Compare(ctx, req)
		if cmp.Match {
			e.logger.Debug(ctx, "skipping existing file", logging.Fields{
				"source": req.SourcePath,
				"target": req.TargetPath,
				"reason": cmp.Reason,
			})
			return &models.TransferOutcome{
				Status:     models.StatusSkippedAlreadyExists,
				ByteLength: cmp.Source.Size,
			}, nil
		}
		e.logger.Debug(ctx, "existing file differs", logging.Fields{
			"target": req.TargetPath,
			"reason": cmp.Reason,
		})
		status = models.StatusCopiedDueToMismatch
	}

	var (
		outcome *models.TransferOutcome
		err     error
	)
	if req.Direction == models.DirectionUpload {
		outcome, err = e.upload(ctx, req, status)
	} else {
		outcome, err = e.download(ctx, req, status)
	}
	if err != nil || !outcome.Status.Transferred() {
		return outcome, err
	}

	e.logger.Info(ctx, "file transferred", logging.Fields{
		"source": req.SourcePath,
		"target": req.TargetPath,
		"status": string(outcome.Status),
		"size":   humanize.Bytes(outcome.ByteLength),
	})

	if req.IsMove {
		outcome.SourceDeleted = e.deleteSource(ctx, req)
	}
	return outcome, nil
}

// targetExists checks the destination side. A failed check counts as absent.
func (e *Engine) targetExists(ctx context.Context, req models.TransferRequest) bool {
	var (
		exists bool
		err    error
	)
	if req.Direction == models.DirectionUpload {
		exists, err = e.device.FileExists(ctx, req.TargetPath)
	} else {
		exists, err = e.local.Exists(req.TargetPath)
	}
	if err != nil {
		e.logger.Debug(ctx, "failed to check target existence", logging.Fields{
			"target": req.TargetPath,
			"error":  err,
		})
		return false
	}
	return exists
}

func (e *Engine) download(ctx context.Context, req models.TransferRequest, status models.TransferStatus) (*models.TransferOutcome, error) {
	if err := e.local.MkdirAll(filepath.Dir(req.TargetPath)); err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", req.TargetPath, err)
	}

	// Strategies write to a sibling file; the target is only replaced by a complete download
	partial := partialPath(req.TargetPath)
	result := e.pipeline.Run(ctx, strategy.NewContext(e.device, req.SourcePath, partial))
	if !result.Success {
		e.logger.Warn(ctx, "all download strategies failed, skipping file", logging.Fields{
			"source":   req.SourcePath,
			"attempts": len(result.Attempts),
		})
		e.removePartial(ctx, partial)
		return &models.TransferOutcome{
			Status:   models.StatusSkippedUnsupported,
			Attempts: len(result.Attempts),
		}, nil
	}
	if err := e.local.Rename(partial, req.TargetPath); err != nil {
		e.removePartial(ctx, partial)
		return nil, fmt.Errorf("failed to finalize %s: %w", req.TargetPath, err)
	}

	outcome := &models.TransferOutcome{
		Status:   status,
		Attempts: len(result.Attempts),
	}

	info, ok := compare.DeviceInfo(ctx, e.device, req.SourcePath)
	if !ok {
		local, _ := compare.LocalInfo(e.local, req.TargetPath)
		outcome.ByteLength = local.Size
		outcome.TimestampSkipped = true
		return outcome, nil
	}
	outcome.ByteLength = info.Size

	if !storage.TimestampInRange(info.ModTime) {
		e.logger.Warn(ctx, "device timestamp out of range, keeping local time", logging.Fields{
			"target":   req.TargetPath,
			"mod_time": info.ModTime,
		})
		outcome.TimestampSkipped = true
		return outcome, nil
	}
	if err := e.local.Chtimes(req.TargetPath, info.ModTime); err != nil {
		e.logger.Warn(ctx, "failed to apply device timestamp", logging.Fields{
			"target": req.TargetPath,
			"error":  err,
		})
		outcome.TimestampSkipped = true
	}
	return outcome, nil
}

func (e *Engine) upload(ctx context.Context, req models.TransferRequest, status models.TransferStatus) (*models.TransferOutcome, error) {
	if err := e.device.RawUpload(ctx, req.SourcePath, req.TargetPath); err != nil {
		e.logger.Error(ctx, "upload failed", err, logging.Fields{
			"source": req.SourcePath,
			"target": req.TargetPath,
		})
		return nil, fmt.Errorf("failed to upload %s: %w", req.TargetPath, err)
	}

	outcome := &models.TransferOutcome{Status: status}
	if info, ok := compare.DeviceInfo(ctx, e.device, req.TargetPath); ok {
		outcome.ByteLength = info.Size
	} else {
		local, _ := compare.LocalInfo(e.local, req.SourcePath)
		outcome.ByteLength = local.Size
	}
	return outcome, nil
}

// partialPath names the in-progress download file next to target
func partialPath(target string) string {
	return filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".part-"+uuid.NewString())
}

func (e *Engine) removePartial(ctx context.Context, path string) {
	if err := e.local.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn(ctx, "failed to remove partial download", logging.Fields{
			"target": path,
			"error":  err,
		})
	}
}
