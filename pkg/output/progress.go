package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/drittich/media-device-copier/pkg/models"
)

// ProgressFormatter shows a progress bar over the file count on terminals.
// On other writers it prints the human per-file lines instead.
type ProgressFormatter struct {
	human *HumanFormatter
	bar   *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int, direction models.Direction) error {
	if writer == nil {
		writer = os.Stdout
	}
	if err := f.human.Start(writer, totalFiles, direction); err != nil {
		return err
	}

	f.bar = nil
	if isTerminal(writer) {
		f.bar = pb.New(totalFiles)
		f.bar.SetTemplate(pb.Full)
		f.bar.SetWriter(writer)
		f.bar.Start()
	}
	return nil
}

// Result advances the bar
func (f *ProgressFormatter) Result(result models.FileResult) error {
	if f.bar == nil {
		return f.human.Result(result)
	}
	f.human.current++
	f.bar.Increment()
	return nil
}

// Complete stops the bar and displays the summary
func (f *ProgressFormatter) Complete(report *models.CopyReport) error {
	f.finishBar()
	return f.human.Complete(report)
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	f.finishBar()
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
