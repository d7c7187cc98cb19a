package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/drittich/media-device-copier/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	current    int
	direction  models.Direction
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int, direction models.Direction) error {
	f.writer = writer
	f.totalFiles = totalFiles
	f.current = 0
	f.direction = direction

	if writer != nil {
		fmt.Fprintf(writer, "Starting %s: %d files\n", direction, totalFiles)
	}
	return nil
}

// Result prints one line per completed request
func (f *HumanFormatter) Result(result models.FileResult) error {
	f.current++
	if f.writer == nil {
		return nil
	}

	path := displayPath(result)
	if result.Err != nil || result.Outcome == nil {
		fmt.Fprintf(f.writer, "[%d/%d] error %s: %v\n", f.current, f.totalFiles, path, result.Err)
		return nil
	}

	outcome := result.Outcome
	line := fmt.Sprintf("[%d/%d] %s %s (%s)", f.current, f.totalFiles, outcome.Status, path, humanize.Bytes(outcome.ByteLength))
	if outcome.Attempts > 1 {
		line += fmt.Sprintf(" after %d attempts", outcome.Attempts)
	}
	if result.Request.IsMove && outcome.Status.Transferred() && !outcome.SourceDeleted {
		line += ", source not deleted"
	}
	fmt.Fprintln(f.writer, line)
	return nil
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.CopyReport) error {
	w := f.writer
	if w == nil {
		w = io.Discard
	}
	writeSummary(w, report)
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func writeSummary(w io.Writer, report *models.CopyReport) {
	stats := report.Stats

	fmt.Fprintf(w, "\n")
	if report.DryRun {
		fmt.Fprintf(w, "Dry run: %d files planned\n", stats.FilesPlanned)
		return
	}
	fmt.Fprintf(w, "%s completed in %s\n", report.Direction, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Planned:              %d\n", stats.FilesPlanned)
	fmt.Fprintf(w, "  Copied:               %d\n", stats.FilesCopied)
	fmt.Fprintf(w, "  Copied (mismatch):    %d\n", stats.FilesCopiedMismatch)
	fmt.Fprintf(w, "  Skipped (existing):   %d\n", stats.FilesSkippedExisting)
	fmt.Fprintf(w, "  Skipped (unsupported): %d\n", stats.FilesSkippedUnsupported)
	fmt.Fprintf(w, "  Errored:              %d\n", stats.FilesErrored)
	if stats.FilesMoved > 0 || stats.MovesFailed > 0 {
		fmt.Fprintf(w, "  Moved:                %d\n", stats.FilesMoved)
		fmt.Fprintf(w, "  Moves failed:         %d\n", stats.MovesFailed)
	}
	if stats.TimestampsSkipped > 0 {
		fmt.Fprintf(w, "  Timestamps kept:      %d\n", stats.TimestampsSkipped)
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Data:                 %s\n", humanize.Bytes(stats.BytesTransferred))
	if report.Duration.Seconds() > 0 {
		avgSpeed := float64(stats.BytesTransferred) / report.Duration.Seconds()
		fmt.Fprintf(w, "  Average speed:        %s/s\n", humanize.Bytes(uint64(avgSpeed)))
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, err := range report.Errors {
			fmt.Fprintf(w, "  %s: %s\n", err.SourcePath, err.Error)
		}
	}
}
