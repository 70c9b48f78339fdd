package services

import (
	"sync"

	"github.com/custodia-labs/stackprobe/internal/catalog"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/export"
)

// Ensure DetectorService implements the interface.
var _ driving.DetectorService = (*DetectorService)(nil)

// DetectorService holds the session state shared by the CLI, TUI and MCP server.
// Writers hold the lock for one page; readers project from a clone.
type DetectorService struct {
	sigs []domain.Signature

	mu        sync.RWMutex
	state     *domain.AggregationState
	sessionID string
}

// NewDetectorService creates a detector over the given signatures.
// A nil slice uses the built-in catalog.
func NewDetectorService(sigs []domain.Signature) *DetectorService {
	if sigs == nil {
		sigs = catalog.All()
	}
	return &DetectorService{
		sigs:  sigs,
		state: domain.NewAggregationState(),
	}
}

// Reset starts a new, empty session.
func (s *DetectorService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewAggregationState()
	s.sessionID = sessionID
}

// SessionID returns the current session identifier.
func (s *DetectorService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Ingest folds one page into the session.
func (s *DetectorService) Ingest(page domain.Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Ingest(s.state, page, s.sigs)
	return page.Valid()
}

// Snapshot returns a filtered, sorted view of the session.
// Project copies the technologies it returns, so the lock is held only
// while they are read.
func (s *DetectorService) Snapshot(params domain.ViewParams) domain.ViewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Project(s.state, params)
}

// Categories returns the filter values with their technology counts.
func (s *DetectorService) Categories() []domain.CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CategoryCounts(s.state)
}

// Summary returns the headline numbers for the session.
func (s *DetectorService) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Summary()
}

// Len returns the number of technologies detected so far.
func (s *DetectorService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Len()
}

// Export serialises a view of the session.
func (s *DetectorService) Export(params domain.ViewParams, format domain.ExportFormat) (string, error) {
	return export.Serialize(s.Snapshot(params), format)
}

// Signatures returns a copy of the catalog.
func (s *DetectorService) Signatures() []domain.Signature {
	out := make([]domain.Signature, len(s.sigs))
	copy(out, s.sigs)
	return out
}
