package driving

import "github.com/custodia-labs/stackprobe/internal/core/domain"

// DetectorService owns the detection session shared by every surface.
// It is safe for concurrent use: one scan writes while views read.
type DetectorService interface {
	// Reset starts a new, empty session.
	Reset(sessionID string)

	// SessionID returns the current session identifier.
	SessionID() string

	// Ingest folds one page into the session.
	// Returns false if the page was invalid and skipped.
	Ingest(page domain.Page) bool

	// Snapshot returns a filtered, sorted view of the session.
	Snapshot(params domain.ViewParams) domain.ViewSnapshot

	// Categories returns the filter values with their technology counts,
	// starting with "all".
	Categories() []domain.CategoryCount

	// Summary returns the headline numbers for the session.
	Summary() domain.Summary

	// Len returns the number of technologies detected so far.
	Len() int

	// Export serialises a view of the session.
	Export(params domain.ViewParams, format domain.ExportFormat) (string, error)

	// Signatures returns the catalog the detector classifies against.
	Signatures() []domain.Signature
}
