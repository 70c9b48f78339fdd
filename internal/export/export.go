// Package export renders view snapshots as JSON, CSV or Markdown.
//
// Output depends only on the snapshot and the format, so identical inputs
// always produce identical text.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// ErrUnknownFormat is returned for formats other than json, csv and markdown.
var ErrUnknownFormat = fmt.Errorf("export: %w", domain.ErrUnsupportedFormat)

// Serialize renders the snapshot in the given format.
func Serialize(snapshot domain.ViewSnapshot, format domain.ExportFormat) (string, error) {
	switch format {
	case domain.FormatJSON:
		return JSON(snapshot)
	case domain.FormatCSV:
		return CSV(snapshot), nil
	case domain.FormatMarkdown:
		return Markdown(snapshot), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile serializes the snapshot into path. When path is a directory the
// format's default file name is used inside it. It returns the written path.
func WriteFile(path string, snapshot domain.ViewSnapshot, format domain.ExportFormat) (string, error) {
	text, err := Serialize(snapshot, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = format.Filename()
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, format.Filename())
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func percent(t *domain.DetectedTechnology) string {
	return fmt.Sprintf("%d%%", t.Percent())
}
