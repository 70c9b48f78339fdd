package archive

import (
	"context"
	"fmt"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source streams the pages of an archived session.
type Source struct {
	archive driven.PageArchive
	id      string
}

// New creates a replay source for the session with the given ID.
func New(archive driven.PageArchive, id string) *Source {
	return &Source{archive: archive, id: id}
}

// Name identifies the replayed session.
func (s *Source) Name() string {
	return "archive " + s.id
}

// Validate checks the session exists.
func (s *Source) Validate(ctx context.Context) error {
	if s.archive == nil {
		return domain.ErrArchiveUnavailable
	}
	if _, err := s.archive.Get(ctx, s.id); err != nil {
		return fmt.Errorf("archive %s: %w", s.id, err)
	}
	return nil
}

// Stream emits the stored pages in capture order.
func (s *Source) Stream(ctx context.Context) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		stored, err := s.archive.Pages(ctx, s.id)
		if err != nil {
			errs <- fmt.Errorf("archive %s: %w", s.id, err)
			return
		}

		for _, p := range stored {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case pages <- p:
			}
		}
	}()

	return pages, errs
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}
