package models

import (
	"time"
)

// CopyReport represents the results of a batch of transfer requests
type CopyReport struct {
	// Session details
	SessionID string
	Direction Direction
	DryRun    bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Per-file results, in request order
	Results []FileResult

	// Errors encountered
	Errors []CopyError

	// Overall status
	Status CopyStatus
}

// Statistics holds batch metrics
type Statistics struct {
	FilesPlanned            int
	FilesCopied             int
	FilesCopiedMismatch     int
	FilesSkippedExisting    int
	FilesSkippedUnsupported int
	FilesErrored            int
	FilesMoved              int // Sources deleted after transfer
	MovesFailed             int // Move requested but the source could not be deleted
	TimestampsSkipped       int

	// Data transfer
	BytesTransferred uint64
}

// FileResult pairs a request with what happened to it
type FileResult struct {
	Request  TransferRequest
	Outcome  *TransferOutcome // nil when Err is set
	Err      error
	Duration time.Duration
}

// CopyStatus represents the overall result
type CopyStatus string

const (
	// CopySuccess indicates every request completed without error
	CopySuccess CopyStatus = "success"
	// CopyPartial indicates some requests failed
	CopyPartial CopyStatus = "partial"
	// CopyFailed indicates the batch failed
	CopyFailed CopyStatus = "failed"
)

// CopyError represents an error for a single request
type CopyError struct {
	SourcePath string
	TargetPath string
	Error      string
	Timestamp  time.Time
}

// Record folds a single request result into the report
func (r *CopyReport) Record(result FileResult) {
	r.Results = append(r.Results, result)

	if result.Err != nil || result.Outcome == nil {
		r.Stats.FilesErrored++
		msg := "no outcome"
		if result.Err != nil {
			msg = result.Err.Error()
		}
		r.Errors = append(r.Errors, CopyError{
			SourcePath: result.Request.SourcePath,
			TargetPath: result.Request.TargetPath,
			Error:      msg,
			Timestamp:  time.Now(),
		})
		return
	}

	outcome := result.Outcome
	switch outcome.Status {
	case StatusCopied:
		r.Stats.FilesCopied++
	case StatusCopiedDueToMismatch:
		r.Stats.FilesCopiedMismatch++
	case StatusSkippedAlreadyExists:
		r.Stats.FilesSkippedExisting++
	case StatusSkippedUnsupported:
		r.Stats.FilesSkippedUnsupported++
	}

	if outcome.Status.Transferred() {
		r.Stats.BytesTransferred += outcome.ByteLength
		if result.Request.IsMove {
			if outcome.SourceDeleted {
				r.Stats.FilesMoved++
			} else {
				r.Stats.MovesFailed++
			}
		}
	}
	if outcome.TimestampSkipped {
		r.Stats.TimestampsSkipped++
	}
}

// Finish stamps the end time and derives the overall status
func (r *CopyReport) Finish(aborted bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	switch {
	case aborted:
		r.Status = CopyFailed
	case r.Stats.FilesErrored == 0:
		r.Status = CopySuccess
	case r.Stats.FilesErrored == len(r.Results):
		r.Status = CopyFailed
	default:
		r.Status = CopyPartial
	}
}

// ExitCode returns the appropriate exit code for the copy status
func (s CopyStatus) ExitCode() int {
	switch s {
	case CopySuccess:
		return 0
	case CopyPartial:
		return 1
	case CopyFailed:
		return 2
	default:
		return 2
	}
}
