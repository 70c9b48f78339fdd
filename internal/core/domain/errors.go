package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrScanInProgress indicates a scan is already feeding the session.
	ErrScanInProgress = errors.New("scan in progress")

	// ErrSourceClosed indicates the page source has been closed.
	ErrSourceClosed = errors.New("source closed")

	// ErrAuthRequired indicates the crawl API needs a key but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrArchiveUnavailable indicates the page archive is not configured.
	ErrArchiveUnavailable = errors.New("page archive unavailable")
)
