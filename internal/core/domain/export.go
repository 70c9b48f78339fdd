package domain

import (
	"fmt"
	"strings"
)

// ExportFormat names a textual rendering of a view snapshot.
type ExportFormat string

// Supported export formats.
const (
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
)

// ExportFormats lists the supported formats.
func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatJSON, FormatCSV, FormatMarkdown}
}

// ParseExportFormat accepts a format name or file extension.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension without the dot.
func (f ExportFormat) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Filename returns the default export file name for the format.
func (f ExportFormat) Filename() string {
	return "tech-stack." + f.Extension()
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}
