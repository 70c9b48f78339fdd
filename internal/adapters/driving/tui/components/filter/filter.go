// Package filter renders the category filter bar.
package filter

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// Bar lists the category filters with their counts.
type Bar struct {
	styles     *styles.Styles
	categories []domain.CategoryCount
	active     string
}

// New creates a filter bar with "all" selected.
func New(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles:     s,
		categories: []domain.CategoryCount{{Category: domain.FilterAll}},
		active:     domain.FilterAll,
	}
}

// SetCategories replaces the available filters. An active filter that is
// no longer listed is kept so the view does not jump while a scan runs.
func (b *Bar) SetCategories(categories []domain.CategoryCount) {
	if len(categories) == 0 {
		categories = []domain.CategoryCount{{Category: domain.FilterAll}}
	}
	b.categories = categories
}

// Active returns the selected filter value.
func (b *Bar) Active() string {
	return b.active
}

// SetActive selects a filter value.
func (b *Bar) SetActive(filter string) {
	if filter == "" {
		filter = domain.FilterAll
	}
	b.active = filter
}

// Next selects the following category, wrapping around.
func (b *Bar) Next() string {
	return b.step(1)
}

// Prev selects the preceding category, wrapping around.
func (b *Bar) Prev() string {
	return b.step(-1)
}

func (b *Bar) step(delta int) string {
	n := len(b.categories)
	idx := b.index()
	if idx < 0 {
		idx = 0
		if delta < 0 {
			delta = 0
		}
	}
	b.active = b.categories[((idx+delta)%n+n)%n].Category
	return b.active
}

func (b *Bar) index() int {
	for i, c := range b.categories {
		if c.Category == b.active {
			return i
		}
	}
	return -1
}

// View renders the filter bar.
func (b *Bar) View() string {
	parts := make([]string, 0, len(b.categories))
	for _, c := range b.categories {
		label := fmt.Sprintf("%s (%d)", c.Category, c.Count)
		if c.Category == b.active {
			parts = append(parts, b.styles.FilterActive.Render(label))
		} else {
			parts = append(parts, b.styles.FilterInactive.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
