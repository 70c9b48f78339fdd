package services

import (
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// Ingest folds one page into the session state and returns it.
//
// Invalid pages are skipped without touching the valid page count. A valid
// page always increments the count, even when the same page was ingested
// before; its URL is attributed to each matching technology at most once.
// Confidence is recomputed for every technology after each valid page.
func Ingest(state *domain.AggregationState, page domain.Page, sigs []domain.Signature) *domain.AggregationState {
	if state == nil {
		state = domain.NewAggregationState()
	}
	if !page.Valid() {
		logger.Debug("Skipping invalid page (url=%q, %d bytes)", page.URL, len(page.Content))
		return state
	}

	state.ValidPages++
	for _, sig := range matchSignatures(page, sigs) {
		state.Add(sig.Name, sig.Category).AddPage(page.URL)
	}
	recomputeConfidence(state)
	return state
}

func recomputeConfidence(state *domain.AggregationState) {
	state.Each(func(t *domain.DetectedTechnology) {
		t.Confidence = confidence(len(t.Pages), state.ValidPages)
	})
}

func confidence(pages, validPages int) float64 {
	if validPages == 0 {
		return 0
	}
	return float64(pages) / float64(validPages)
}
