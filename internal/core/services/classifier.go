package services

import (
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/logger"
)

// Classify returns the names of the signatures matching the page, in catalog order.
// Invalid pages match nothing.
func Classify(page domain.Page, sigs []domain.Signature) []string {
	matched := matchSignatures(page, sigs)
	names := make([]string, len(matched))
	for i, sig := range matched {
		names[i] = sig.Name
	}
	return names
}

// matchSignatures evaluates every signature against the page content.
// A predicate that panics counts as no match for that signature only.
func matchSignatures(page domain.Page, sigs []domain.Signature) []domain.Signature {
	if !page.Valid() {
		return nil
	}
	var matched []domain.Signature
	for i := range sigs {
		if safeMatch(&sigs[i], page) {
			matched = append(matched, sigs[i])
		}
	}
	return matched
}

func safeMatch(sig *domain.Signature, page domain.Page) (ok bool) {
	if sig.Match == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Signature %s failed on %s: %v", sig.Name, page.URL, r)
			ok = false
		}
	}()
	return sig.Match(page.Content)
}
