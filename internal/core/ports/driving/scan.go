package driving

import (
	"context"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// ScanService feeds pages from a source into the detection session.
type ScanService interface {
	// Scan resets the session and streams the requested source into it.
	// Returns domain.ErrScanInProgress if another scan is running.
	Scan(ctx context.Context, req domain.ScanRequest, opts ...ScanOption) (*domain.ScanResult, error)

	// Status returns the progress of the current or last scan.
	Status() domain.ScanStatus
}

// ScanConfig holds per-scan options.
type ScanConfig struct {
	// OnPage is called after each page is ingested, valid or not.
	OnPage func(page domain.Page, status domain.ScanStatus)

	// Archive overrides the configured archive setting when non-nil.
	Archive *bool
}

// ScanOption configures a single scan.
type ScanOption func(*ScanConfig)

// WithPageHook registers a callback invoked after every page.
func WithPageHook(fn func(page domain.Page, status domain.ScanStatus)) ScanOption {
	return func(c *ScanConfig) {
		c.OnPage = fn
	}
}

// WithArchive forces archiving on or off for this scan.
func WithArchive(enabled bool) ScanOption {
	return func(c *ScanConfig) {
		c.Archive = &enabled
	}
}

// ApplyScanOptions builds a ScanConfig from options.
func ApplyScanOptions(opts ...ScanOption) ScanConfig {
	var cfg ScanConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
