package driven

import (
	"context"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// PageSource streams pages into a scan.
// Each source type (crawl API, NDJSON file, queue, archive) implements this interface.
type PageSource interface {
	// Name returns a short label for logs and status lines.
	Name() string

	// Validate checks the source is configured and reachable enough to start.
	// It must not consume pages.
	Validate(ctx context.Context) error

	// Stream starts delivering pages. Both channels are closed when the
	// source is exhausted, fails or ctx is cancelled. At most one error is
	// sent; a cancelled context is reported as ctx.Err().
	Stream(ctx context.Context) (<-chan domain.Page, <-chan error)

	// Close releases resources.
	Close() error
}

// SourceFactory creates page sources from scan requests.
type SourceFactory interface {
	// Create returns a PageSource for the request.
	// Returns domain.ErrInvalidInput if the request cannot be served.
	Create(ctx context.Context, req domain.ScanRequest) (PageSource, error)
}
