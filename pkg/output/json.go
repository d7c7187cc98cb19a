package output

import (
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/drittich/media-device-copier/pkg/models"
)

// JSONFormatter writes one JSON event per line for automation and scripting
type JSONFormatter struct {
	writer  io.Writer
	encoder *json.Encoder
}

// JSONEvent represents a single event in the JSON output stream
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// JSONStartData represents the data for a start event
type JSONStartData struct {
	Direction  string `json:"direction"`
	TotalFiles int    `json:"total_files"`
}

// JSONFileData represents a per-file result
type JSONFileData struct {
	Source           string `json:"source"`
	Target           string `json:"target"`
	Status           string `json:"status,omitempty"`
	Bytes            uint64 `json:"bytes"`
	Attempts         int    `json:"attempts,omitempty"`
	Move             bool   `json:"move,omitempty"`
	SourceDeleted    bool   `json:"source_deleted,omitempty"`
	TimestampSkipped bool   `json:"timestamp_skipped,omitempty"`
	DurationMs       int64  `json:"duration_ms"`
	Error            string `json:"error,omitempty"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	SessionID  string          `json:"session_id"`
	Direction  string          `json:"direction"`
	DryRun     bool            `json:"dry_run,omitempty"`
	Status     string          `json:"status"`
	Duration   string          `json:"duration"`
	DurationMs int64           `json:"duration_ms"`
	Stats      JSONStatsData   `json:"stats"`
	Errors     []JSONErrorData `json:"errors,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	FilesPlanned            int    `json:"files_planned"`
	FilesCopied             int    `json:"files_copied"`
	FilesCopiedMismatch     int    `json:"files_copied_mismatch"`
	FilesSkippedExisting    int    `json:"files_skipped_existing"`
	FilesSkippedUnsupported int    `json:"files_skipped_unsupported"`
	FilesErrored            int    `json:"files_errored"`
	FilesMoved              int    `json:"files_moved"`
	MovesFailed             int    `json:"moves_failed"`
	TimestampsSkipped       int    `json:"timestamps_skipped"`
	BytesTransferred        uint64 `json:"bytes_transferred"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Error  string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int, direction models.Direction) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.encoder = json.NewEncoder(writer)

	return f.emit("start", JSONStartData{
		Direction:  string(direction),
		TotalFiles: totalFiles,
	})
}

// Result emits a file event
func (f *JSONFormatter) Result(result models.FileResult) error {
	data := JSONFileData{
		Source:     result.Request.SourcePath,
		Target:     result.Request.TargetPath,
		Move:       result.Request.IsMove,
		DurationMs: result.Duration.Milliseconds(),
	}
	if result.Err != nil {
		data.Error = result.Err.Error()
	}
	if o := result.Outcome; o != nil {
		data.Status = string(o.Status)
		data.Bytes = o.ByteLength
		data.Attempts = o.Attempts
		data.SourceDeleted = o.SourceDeleted
		data.TimestampSkipped = o.TimestampSkipped
	}
	return f.emit("file", data)
}

// Complete emits the final report
func (f *JSONFormatter) Complete(report *models.CopyReport) error {
	var errors []JSONErrorData
	for _, err := range report.Errors {
		errors = append(errors, JSONErrorData{
			Source: err.SourcePath,
			Target: err.TargetPath,
			Error:  err.Error,
		})
	}

	stats := report.Stats
	return f.emit("complete", JSONReportData{
		SessionID:  report.SessionID,
		Direction:  string(report.Direction),
		DryRun:     report.DryRun,
		Status:     string(report.Status),
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			FilesPlanned:            stats.FilesPlanned,
			FilesCopied:             stats.FilesCopied,
			FilesCopiedMismatch:     stats.FilesCopiedMismatch,
			FilesSkippedExisting:    stats.FilesSkippedExisting,
			FilesSkippedUnsupported: stats.FilesSkippedUnsupported,
			FilesErrored:            stats.FilesErrored,
			FilesMoved:              stats.FilesMoved,
			MovesFailed:             stats.MovesFailed,
			TimestampsSkipped:       stats.TimestampsSkipped,
			BytesTransferred:        stats.BytesTransferred,
		},
		Errors: errors,
	})
}

// Error emits an error event
func (f *JSONFormatter) Error(err error) error {
	return f.emit("error", map[string]string{
		"error": err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func (f *JSONFormatter) emit(eventType string, data any) error {
	if f.encoder == nil {
		f.encoder = json.NewEncoder(os.Stdout)
	}
	return f.encoder.Encode(JSONEvent{
		Timestamp: time.Now(),
		Type:      eventType,
		Data:      data,
	})
}
