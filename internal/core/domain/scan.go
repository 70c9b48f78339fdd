package domain

import "time"

// ScanStatus reports the progress of the scan feeding a session.
type ScanStatus struct {
	SessionID     string
	Source        string
	Running       bool
	PagesReceived int
	ValidPages    int
	Technologies  int
	StartedAt     time.Time
}

// ScanResult describes a finished scan.
type ScanResult struct {
	SessionID     string
	Source        string
	PagesReceived int
	ValidPages    int
	Duration      time.Duration
	Summary       Summary

	// Cancelled is set when the scan was stopped before the source ended.
	Cancelled bool
	// Archived is set when the received pages were saved to the archive.
	Archived bool

	// Partial is set when the source failed after delivering pages.
	// The pages received are kept and Warning says why the stream ended.
	Partial bool
	Warning string

	// Message is the completion line, e.g. "3 pages crawled in 1.2s".
	Message string
}

// ArchiveSession is a set of raw pages saved from one scan.
type ArchiveSession struct {
	ID        string
	Source    string
	Targets   []string
	PageCount int
	CreatedAt time.Time
}
