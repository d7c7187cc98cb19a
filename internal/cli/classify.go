package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drittich/media-device-copier/internal/platform"
	"github.com/drittich/media-device-copier/pkg/models"
)

// NewClassifyCommand creates the classify command
func NewClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file|extension>...",
		Short: "Show the media class of files or extensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				fmt.Fprintf(out, "%s\t%s\n", arg, models.ClassifyExtension(extensionOf(arg)))
			}
			return nil
		},
	}
}

// extensionOf accepts "IMG_0001.JPG", ".jpg" and "jpg"
func extensionOf(arg string) string {
	if ext := platform.Ext(arg); ext != "" && ext != arg {
		return ext
	}
	return strings.TrimPrefix(arg, ".")
}
