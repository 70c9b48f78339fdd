// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// PageReceived is sent after each page is folded into the session.
type PageReceived struct {
	URL    string
	Status domain.ScanStatus
}

// ScanFinished is sent once when the scan ends.
type ScanFinished struct {
	Result *domain.ScanResult
	Err    error
}

// ExportCompleted carries the outcome of a J/C/M export.
type ExportCompleted struct {
	Format domain.ExportFormat
	Path   string
	Err    error
}

// RefreshTick asks the dashboard to re-read the session if pages arrived.
type RefreshTick struct{}
