package mcp

import (
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Detector holds the shared session fed by the crawl tool.
	Detector driving.DetectorService

	// Scan runs crawls into Detector.
	Scan driving.ScanService

	// Settings supplies crawl defaults.
	Settings driving.SettingsService

	// NewSession opens an isolated session for the detect tool.
	NewSession func() driving.DetectorService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Detector == nil {
		return ErrMissingDetectorService
	}
	// Scan, Settings and NewSession only gate individual tools
	return nil
}
