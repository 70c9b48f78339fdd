package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// Ensure PageArchive implements the interface.
var _ driven.PageArchive = (*PageArchive)(nil)

// PageArchive is an in-memory implementation of driven.PageArchive.
type PageArchive struct {
	mu       sync.RWMutex
	sessions map[string]domain.ArchiveSession
	pages    map[string][]domain.Page
}

// NewPageArchive creates an empty in-memory archive.
func NewPageArchive() *PageArchive {
	return &PageArchive{
		sessions: make(map[string]domain.ArchiveSession),
		pages:    make(map[string][]domain.Page),
	}
}

// Save stores a session and its pages, replacing any session with the same ID.
func (a *PageArchive) Save(_ context.Context, session domain.ArchiveSession, pages []domain.Page) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	session.PageCount = len(pages)
	session.Targets = append([]string(nil), session.Targets...)
	a.sessions[session.ID] = session
	a.pages[session.ID] = append([]domain.Page(nil), pages...)
	return nil
}

// List returns all sessions, newest first.
func (a *PageArchive) List(_ context.Context) ([]domain.ArchiveSession, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.ArchiveSession, 0, len(a.sessions))
	for _, s := range a.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get retrieves a session by ID.
func (a *PageArchive) Get(_ context.Context, id string) (*domain.ArchiveSession, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// Pages returns the pages of a session in save order.
func (a *PageArchive) Pages(_ context.Context, id string) ([]domain.Page, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	pages, ok := a.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Page(nil), pages...), nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (a *PageArchive) Delete(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
	delete(a.pages, id)
	return nil
}
