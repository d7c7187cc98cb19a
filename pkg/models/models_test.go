package models

import (
	"errors"
	"testing"
	"time"
)

// ============== Direction Tests ==============

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"download", DirectionDownload, false},
		{"Upload", DirectionUpload, false},
		{" DOWNLOAD ", DirectionDownload, false},
		{"sideways", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseDirection(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

// ============== TransferRequest Tests ==============

func TestTransferRequestValidate(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		req := TransferRequest{
			Direction:  DirectionDownload,
			SourcePath: "/DCIM/IMG_0001.JPG",
			TargetPath: "/photos/IMG_0001.JPG",
		}
		if err := req.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("UnknownDirection", func(t *testing.T) {
		req := TransferRequest{Direction: "sideways", SourcePath: "a", TargetPath: "b"}
		var ve *ValidationError
		if err := req.Validate(); !errors.As(err, &ve) || ve.Field != "Direction" {
			t.Errorf("Validate() error = %v, want Direction validation error", err)
		}
	})

	t.Run("EmptySourcePath", func(t *testing.T) {
		req := TransferRequest{Direction: DirectionUpload, TargetPath: "b"}
		var ve *ValidationError
		if err := req.Validate(); !errors.As(err, &ve) || ve.Field != "SourcePath" {
			t.Errorf("Validate() error = %v, want SourcePath validation error", err)
		}
	})

	t.Run("EmptyTargetPath", func(t *testing.T) {
		req := TransferRequest{Direction: DirectionUpload, SourcePath: "a"}
		var ve *ValidationError
		if err := req.Validate(); !errors.As(err, &ve) || ve.Field != "TargetPath" {
			t.Errorf("Validate() error = %v, want TargetPath validation error", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== ComparisonInfo Tests ==============

func TestComparisonInfo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Equal", func(t *testing.T) {
		a := ComparisonInfo{Size: 100, ModTime: now}
		b := ComparisonInfo{Size: 100, ModTime: now.In(time.Local)}
		if !a.Equal(b) {
			t.Error("Equal() should be true for same instant in different locations")
		}
	})

	t.Run("DifferentTime", func(t *testing.T) {
		a := ComparisonInfo{Size: 100, ModTime: now}
		b := ComparisonInfo{Size: 100, ModTime: now.Add(time.Second)}
		if a.Equal(b) {
			t.Error("Equal() should be false for different times")
		}
		if !a.SameSize(b) {
			t.Error("SameSize() should be true")
		}
	})

	t.Run("DifferentSize", func(t *testing.T) {
		a := ComparisonInfo{Size: 100, ModTime: now}
		b := ComparisonInfo{Size: 101, ModTime: now}
		if a.Equal(b) || a.SameSize(b) {
			t.Error("sizes differ, neither Equal() nor SameSize() should hold")
		}
	})

	t.Run("Sentinel", func(t *testing.T) {
		if !SentinelComparisonInfo.IsSentinel() {
			t.Error("SentinelComparisonInfo.IsSentinel() should be true")
		}
		if (ComparisonInfo{Size: 1}).IsSentinel() {
			t.Error("non-zero size is not the sentinel")
		}
	})
}

// ============== MediaClass Tests ==============

func TestClassifyExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected MediaClass
	}{
		{".JPG", MediaImage},
		{"jpg", MediaImage},
		{".jpg", MediaImage},
		{".CR3", MediaImage},
		{"mp4", MediaVideo},
		{".MOV", MediaVideo},
		{".m4a", MediaAudio},
		{"THM", MediaMetadata},
		{".xmp", MediaMetadata},
		{".pdf", MediaDocument},
		{".xyz", MediaUnknown},
		{"", MediaUnknown},
		{".", MediaUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := ClassifyExtension(tt.ext); got != tt.expected {
				t.Errorf("ClassifyExtension(%q) = %s, want %s", tt.ext, got, tt.expected)
			}
		})
	}
}

// ============== TransferStatus Tests ==============

func TestTransferStatus(t *testing.T) {
	tests := []struct {
		status      TransferStatus
		transferred bool
	}{
		{StatusCopied, true},
		{StatusCopiedDueToMismatch, true},
		{StatusSkippedAlreadyExists, false},
		{StatusSkippedUnsupported, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.Transferred() != tt.transferred {
				t.Errorf("Transferred() = %v, want %v", tt.status.Transferred(), tt.transferred)
			}
			if tt.status.Skipped() == tt.transferred {
				t.Errorf("Skipped() = %v, want %v", tt.status.Skipped(), !tt.transferred)
			}
		})
	}
}

// ============== CopyReport Tests ==============

func TestCopyReportRecord(t *testing.T) {
	report := &CopyReport{StartTime: time.Now()}

	report.Record(FileResult{
		Request: TransferRequest{SourcePath: "a", TargetPath: "a", IsMove: true},
		Outcome: &TransferOutcome{Status: StatusCopied, ByteLength: 10, SourceDeleted: true},
	})
	report.Record(FileResult{
		Request: TransferRequest{SourcePath: "b", TargetPath: "b", IsMove: true},
		Outcome: &TransferOutcome{Status: StatusCopiedDueToMismatch, ByteLength: 5, TimestampSkipped: true},
	})
	report.Record(FileResult{
		Request: TransferRequest{SourcePath: "c", TargetPath: "c", IsMove: true},
		Outcome: &TransferOutcome{Status: StatusSkippedAlreadyExists, ByteLength: 7},
	})
	report.Record(FileResult{
		Request: TransferRequest{SourcePath: "d", TargetPath: "d"},
		Outcome: &TransferOutcome{Status: StatusSkippedUnsupported},
	})
	report.Record(FileResult{
		Request: TransferRequest{SourcePath: "e", TargetPath: "e"},
		Err:     errors.New("upload failed"),
	})

	stats := report.Stats
	if stats.FilesCopied != 1 || stats.FilesCopiedMismatch != 1 {
		t.Errorf("copied = %d/%d, want 1/1", stats.FilesCopied, stats.FilesCopiedMismatch)
	}
	if stats.FilesSkippedExisting != 1 || stats.FilesSkippedUnsupported != 1 {
		t.Errorf("skipped = %d/%d, want 1/1", stats.FilesSkippedExisting, stats.FilesSkippedUnsupported)
	}
	if stats.FilesErrored != 1 || len(report.Errors) != 1 {
		t.Errorf("errored = %d (%d errors), want 1", stats.FilesErrored, len(report.Errors))
	}
	if stats.BytesTransferred != 15 {
		t.Errorf("BytesTransferred = %d, want 15", stats.BytesTransferred)
	}
	if stats.FilesMoved != 1 || stats.MovesFailed != 1 {
		t.Errorf("moved = %d, failed = %d, want 1 and 1", stats.FilesMoved, stats.MovesFailed)
	}
	if stats.TimestampsSkipped != 1 {
		t.Errorf("TimestampsSkipped = %d, want 1", stats.TimestampsSkipped)
	}

	report.Finish(false)
	if report.Status != CopyPartial {
		t.Errorf("Status = %s, want partial", report.Status)
	}
	if report.Duration < 0 {
		t.Error("Duration should not be negative")
	}
}

func TestCopyReportFinish(t *testing.T) {
	t.Run("EmptyIsSuccess", func(t *testing.T) {
		report := &CopyReport{StartTime: time.Now()}
		report.Finish(false)
		if report.Status != CopySuccess {
			t.Errorf("Status = %s, want success", report.Status)
		}
	})

	t.Run("AllErroredIsFailed", func(t *testing.T) {
		report := &CopyReport{StartTime: time.Now()}
		report.Record(FileResult{Err: errors.New("boom")})
		report.Finish(false)
		if report.Status != CopyFailed {
			t.Errorf("Status = %s, want failed", report.Status)
		}
	})

	t.Run("AbortedIsFailed", func(t *testing.T) {
		report := &CopyReport{StartTime: time.Now()}
		report.Record(FileResult{Outcome: &TransferOutcome{Status: StatusCopied}})
		report.Finish(true)
		if report.Status != CopyFailed {
			t.Errorf("Status = %s, want failed", report.Status)
		}
	})
}

func TestCopyStatusExitCode(t *testing.T) {
	tests := []struct {
		status   CopyStatus
		expected int
	}{
		{CopySuccess, 0},
		{CopyPartial, 1},
		{CopyFailed, 2},
		{CopyStatus("weird"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
