package output

import (
	"fmt"
	"io"

	"github.com/drittich/media-device-copier/pkg/models"
)

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and progress bar formatters
type Formatter interface {
	// Start initializes the formatter for a new batch
	Start(writer io.Writer, totalFiles int, direction models.Direction) error

	// Result reports one completed request, in request order
	Result(result models.FileResult) error

	// Complete finalizes output and displays summary
	Complete(report *models.CopyReport) error

	// Error reports an error that ends the batch
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// New returns the formatter for name ("human" or "json").
// progress replaces the per-file lines of the human formatter with a progress bar.
func New(name string, progress bool) (Formatter, error) {
	switch name {
	case "", "human":
		if progress {
			return NewProgressFormatter(), nil
		}
		return NewHumanFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid: human, json)", name)
	}
}

// displayPath returns the path shown for a result
func displayPath(result models.FileResult) string {
	return result.Request.SourcePath
}
