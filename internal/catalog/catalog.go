package catalog

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// All returns the built-in signatures in catalog order.
// The returned slice is a copy; callers may reorder or filter it freely.
func All() []domain.Signature {
	out := make([]domain.Signature, len(builtin))
	copy(out, builtin)
	return out
}

// Categories returns the distinct categories of sigs in lexicographic order.
func Categories(sigs []domain.Signature) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, s := range sigs {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		cats = append(cats, s.Category)
	}
	sort.Strings(cats)
	return cats
}

// InCategory returns the signatures of one category, keeping catalog order.
func InCategory(sigs []domain.Signature, category string) []domain.Signature {
	var out []domain.Signature
	for _, s := range sigs {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the signature with the given name.
func Find(sigs []domain.Signature, name string) (domain.Signature, bool) {
	for _, s := range sigs {
		if s.Name == name {
			return s, true
		}
	}
	return domain.Signature{}, false
}

// Validate checks that names are present and unique and that every
// signature has a predicate.
func Validate(sigs []domain.Signature) error {
	seen := make(map[string]struct{}, len(sigs))
	for i, s := range sigs {
		if s.Name == "" {
			return fmt.Errorf("%w: signature %d has no name", domain.ErrInvalidInput, i)
		}
		if s.Match == nil {
			return fmt.Errorf("%w: signature %q has no predicate", domain.ErrInvalidInput, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate signature %q", domain.ErrInvalidInput, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
