package transfer

import (
	"context"

	"github.com/drittich/media-device-copier/pkg/logging"
	"github.com/drittich/media-device-copier/pkg/models"
)

// deleteSource removes the source of a completed move and reports whether it is gone.
// A failed delete leaves the transfer successful.
func (e *Engine) deleteSource(ctx context.Context, req models.TransferRequest) bool {
	var err error
	if req.Direction == models.DirectionUpload {
		err = e.local.Remove(req.SourcePath)
	} else {
		err = e.device.Delete(ctx, req.SourcePath)
	}
	if err != nil {
		e.logger.Warn(ctx, "failed to delete source after move", logging.Fields{
			"source": req.SourcePath,
			"error":  err,
		})
		return false
	}
	return true
}
