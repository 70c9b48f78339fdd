package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService exposes saved page sessions.
type ArchiveService struct {
	archive driven.PageArchive
}

// NewArchiveService creates an archive service. A nil archive is allowed;
// every call then returns domain.ErrArchiveUnavailable.
func NewArchiveService(archive driven.PageArchive) *ArchiveService {
	return &ArchiveService{archive: archive}
}

// List returns all archived sessions, newest first.
func (s *ArchiveService) List(ctx context.Context) ([]domain.ArchiveSession, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	sessions, err := s.archive.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return sessions, nil
}

// Get retrieves a session by ID.
func (s *ArchiveService) Get(ctx context.Context, id string) (*domain.ArchiveSession, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	session, err := s.archive.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get archive session %s: %w", id, err)
	}
	return session, nil
}

// Delete removes a session after checking it exists.
func (s *ArchiveService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.archive.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete archive session %s: %w", id, err)
	}
	return nil
}

// Available reports whether an archive is configured.
func (s *ArchiveService) Available() bool {
	return s.archive != nil
}
