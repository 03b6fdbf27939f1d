package service

import (
	"fmt"

	"github.com/cloneradar/cloneradar/domain"
)

// OutputFormatResolver maps a domain.OutputFormat onto the file extension a
// generated report should carry. cloneradar's --format takes a single
// string value rather than a set of exclusive boolean flags, so there's
// no flag-combination validation left to do here — only the format-to-extension
// lookup remains a distinct concern worth its own type.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Extension returns the file extension a report in format should be written
// with. OutputFormatText has no extension, since text reports go to stdout
// rather than a file.
func (r *OutputFormatResolver) Extension(format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return "", nil
	case domain.OutputFormatJSON:
		return "json", nil
	case domain.OutputFormatYAML:
		return "yaml", nil
	case domain.OutputFormatCSV:
		return "csv", nil
	case domain.OutputFormatHTML:
		return "html", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
