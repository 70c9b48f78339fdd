// Package tui provides an interactive terminal dashboard for stackprobe.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Detector holds the session being displayed.
	Detector driving.DetectorService

	// Scan streams pages into Detector.
	Scan driving.ScanService

	// Settings supplies the initial sort order. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Detector == nil {
		return ErrMissingDetector
	}
	if p.Scan == nil {
		return ErrMissingScan
	}
	return nil
}
