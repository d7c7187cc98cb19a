package transfer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/logging"
	"github.com/drittich/media-device-copier/pkg/models"
	"github.com/drittich/media-device-copier/pkg/output"
)

// SessionConfig configures a batch session
type SessionConfig struct {
	Direction models.Direction
	Formatter output.Formatter
	Writer    io.Writer
	Logger    logging.Logger
}

// Session runs a batch of requests one at a time against one engine
type Session struct {
	id        string
	engine    *Engine
	direction models.Direction
	formatter output.Formatter
	writer    io.Writer
	logger    logging.Logger
}

// NewSession creates a session with a fresh ID
func NewSession(engine *Engine, config SessionConfig) *Session {
	logger := config.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Session{
		id:        uuid.New().String(),
		engine:    engine,
		direction: config.Direction,
		formatter: config.Formatter,
		writer:    config.Writer,
		logger:    logger,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Run processes requests strictly in order.
// Per-request errors are recorded and the batch continues. A disconnected device
// or a cancelled context stops the batch; the partial report is returned with the error.
func (s *Session) Run(ctx context.Context, requests []models.TransferRequest) (*models.CopyReport, error) {
	report := &models.CopyReport{
		SessionID: s.id,
		Direction: s.direction,
		StartTime: time.Now(),
	}
	report.Stats.FilesPlanned = len(requests)

	s.logger.Info(ctx, "session started", logging.Fields{
		"session_id": s.id,
		"direction":  string(s.direction),
		"files":      len(requests),
	})

	if s.formatter != nil {
		if err := s.formatter.Start(s.writer, len(requests), s.direction); err != nil {
			return nil, err
		}
	}

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return s.abort(ctx, report, err)
		}

		start := time.Now()
		outcome, err := s.engine.Transfer(ctx, req)
		result := models.FileResult{
			Request:  req,
			Outcome:  outcome,
			Err:      err,
			Duration: time.Since(start),
		}
		report.Record(result)
		if s.formatter != nil {
			s.formatter.Result(result)
		}

		if errors.Is(err, device.ErrNotConnected) {
			return s.abort(ctx, report, err)
		}
		if err != nil {
			s.logger.Warn(ctx, "request failed", logging.Fields{
				"source": req.SourcePath,
				"error":  err,
			})
		}
	}

	report.Finish(false)
	s.complete(ctx, report)
	return report, nil
}

func (s *Session) abort(ctx context.Context, report *models.CopyReport, err error) (*models.CopyReport, error) {
	s.logger.Error(ctx, "session stopped", err, logging.Fields{
		"session_id": s.id,
		"processed":  len(report.Results),
	})
	report.Finish(true)
	if s.formatter != nil {
		s.formatter.Error(err)
	}
	s.complete(ctx, report)
	return report, err
}

func (s *Session) complete(ctx context.Context, report *models.CopyReport) {
	s.logger.Info(ctx, "session completed", logging.Fields{
		"session_id": s.id,
		"status":     string(report.Status),
		"copied":     report.Stats.FilesCopied + report.Stats.FilesCopiedMismatch,
		"errored":    report.Stats.FilesErrored,
		"duration":   report.Duration,
	})
	if s.formatter != nil {
		s.formatter.Complete(report)
	}
}
