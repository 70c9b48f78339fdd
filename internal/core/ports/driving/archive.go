package driving

import (
	"context"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// ArchiveService manages saved page sessions.
type ArchiveService interface {
	// List returns all archived sessions, newest first.
	List(ctx context.Context) ([]domain.ArchiveSession, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.ArchiveSession, error)

	// Delete removes a session and its pages.
	Delete(ctx context.Context, id string) error

	// Available reports whether an archive is configured.
	Available() bool
}
