package driven

import (
	"context"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// PageArchive persists the raw pages of a scan so they can be replayed.
// Detection results are never stored; replaying re-runs detection.
type PageArchive interface {
	// Save stores a session and its pages. PageCount is taken from pages.
	Save(ctx context.Context, session domain.ArchiveSession, pages []domain.Page) error

	// List returns all sessions, newest first.
	List(ctx context.Context) ([]domain.ArchiveSession, error)

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*domain.ArchiveSession, error)

	// Pages returns the pages of a session in the order they were saved.
	// Returns domain.ErrNotFound if the session does not exist.
	Pages(ctx context.Context, id string) ([]domain.Page, error)

	// Delete removes a session and its pages.
	Delete(ctx context.Context, id string) error
}
