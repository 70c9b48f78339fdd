// Package summary renders the headline cards above the table.
package summary

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// Cards shows the session totals.
type Cards struct {
	styles  *styles.Styles
	summary domain.Summary
}

// New creates the summary cards.
func New(s *styles.Styles) *Cards {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Cards{styles: s}
}

// SetSummary updates the numbers shown.
func (c *Cards) SetSummary(sum domain.Summary) {
	c.summary = sum
}

// Summary returns the numbers shown.
func (c *Cards) Summary() domain.Summary {
	return c.summary
}

// View renders the four cards side by side.
func (c *Cards) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		c.card(humanize.Comma(int64(c.summary.Technologies)), "Technologies"),
		c.card(humanize.Comma(int64(c.summary.Categories)), "Categories"),
		c.card(humanize.Comma(int64(c.summary.PagesScanned)), "Pages scanned"),
		c.card(fmt.Sprintf("%.1f", c.summary.AvgPerPage), "Avg / page"),
	)
}

func (c *Cards) card(value, label string) string {
	return c.styles.Card.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			c.styles.CardValue.Render(value),
			c.styles.Muted.Render(label),
		),
	)
}
