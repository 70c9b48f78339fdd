// Package mcp provides an MCP (Model Context Protocol) server adapter for stackprobe.
// It lets AI assistants detect technologies in pages, crawl sites and export reports.
package mcp

import "errors"

var (
	// ErrMissingDetectorService is returned when the detector service is not provided.
	ErrMissingDetectorService = errors.New("mcp: detector service is required")

	// ErrScanUnavailable is returned by the crawl tool when no scan service is wired.
	ErrScanUnavailable = errors.New("mcp: scan service not configured")

	// ErrSessionsUnavailable is returned by the detect tool when it cannot open a session.
	ErrSessionsUnavailable = errors.New("mcp: session factory not configured")

	// ErrNoPages is returned when detect is called without pages.
	ErrNoPages = errors.New("mcp: at least one page is required")

	// ErrNoURLs is returned when crawl is called without urls.
	ErrNoURLs = errors.New("mcp: at least one url is required")
)
