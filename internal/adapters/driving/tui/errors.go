package tui

import "errors"

var (
	// ErrMissingDetector is returned when the detector service is not provided.
	ErrMissingDetector = errors.New("tui: detector service is required")

	// ErrMissingScan is returned when the scan service is not provided.
	ErrMissingScan = errors.New("tui: scan service is required")
)
