// Package table renders the detected technology table.
package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

const (
	categoryWidth   = 22
	pagesWidth      = 7
	confidenceWidth = 12
	minNameWidth    = 12
)

// TechTable displays detected technologies in a navigable table.
type TechTable struct {
	items     []domain.DetectedTechnology
	selected  int
	sortKey   domain.SortKey
	direction domain.SortDirection
	styles    *styles.Styles
	width     int
	height    int
}

// New creates a new technology table.
func New(s *styles.Styles) *TechTable {
	if s == nil {
		s = styles.DefaultStyles()
	}

	d := domain.DefaultViewParams()
	return &TechTable{
		styles:    s,
		sortKey:   d.SortKey,
		direction: d.Direction,
		width:     80,
		height:    10,
	}
}

// SetSnapshot replaces the rows. The selection is kept on the same
// technology when it is still visible.
func (t *TechTable) SetSnapshot(snapshot domain.ViewSnapshot) {
	var current string
	if sel := t.SelectedItem(); sel != nil {
		current = sel.Name
	}

	t.items = snapshot.Items
	t.sortKey = snapshot.SortKey
	t.direction = snapshot.Direction
	t.selected = 0

	for i := range t.items {
		if t.items[i].Name == current {
			t.selected = i
			break
		}
	}
}

// View renders the table.
func (t *TechTable) View() string {
	nameWidth := t.nameWidth()
	lines := make([]string, 0, len(t.items)+1)
	lines = append(lines, t.styles.TableHeader.Render(t.header(nameWidth)))

	if len(t.items) == 0 {
		lines = append(lines, t.styles.Muted.Render("  No technologies detected yet"))
		return strings.Join(lines, "\n")
	}

	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, t.renderRow(i, nameWidth))
	}
	if end < len(t.items) {
		lines = append(lines, t.styles.Muted.Render(fmt.Sprintf("  … %d more", len(t.items)-end)))
	}

	return strings.Join(lines, "\n")
}

func (t *TechTable) header(nameWidth int) string {
	col := func(key domain.SortKey, title string) string {
		if key != t.sortKey {
			return title
		}
		if t.direction == domain.Ascending {
			return title + " ▲"
		}
		return title + " ▼"
	}

	return fmt.Sprintf("  %-*s %-*s %*s %*s",
		nameWidth, col(domain.SortByName, "Technology"),
		categoryWidth, col(domain.SortByCategory, "Category"),
		pagesWidth, col(domain.SortByPages, "Pages"),
		confidenceWidth, col(domain.SortByConfidence, "Confidence"),
	)
}

func (t *TechTable) renderRow(index, nameWidth int) string {
	item := &t.items[index]
	indicator := "  "
	if index == t.selected {
		indicator = "> "
	}

	row := fmt.Sprintf("%s%-*s %-*s %*d %*s",
		indicator,
		nameWidth, truncate(item.Name, nameWidth),
		categoryWidth, truncate(item.Category, categoryWidth),
		pagesWidth, item.PageCount(),
		confidenceWidth, fmt.Sprintf("%d%%", item.Percent()),
	)

	if index == t.selected {
		return t.styles.Selected.Render(row)
	}
	return t.styles.Normal.Render(row)
}

func (t *TechTable) nameWidth() int {
	w := t.width - categoryWidth - pagesWidth - confidenceWidth - 6
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

// visibleRange keeps the selected row on screen.
func (t *TechTable) visibleRange() (start, end int) {
	visible := t.height - 2
	if visible < 1 {
		visible = 1
	}
	if t.selected >= visible {
		start = t.selected - visible + 1
	}
	end = start + visible
	if end > len(t.items) {
		end = len(t.items)
	}
	return start, end
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) < width {
		return string(r[:max(width, 0)])
	}
	return string(r[:width-1]) + "…"
}

// Items returns the current rows.
func (t *TechTable) Items() []domain.DetectedTechnology {
	return t.items
}

// Selected returns the index of the selected row.
func (t *TechTable) Selected() int {
	return t.selected
}

// SelectedItem returns the selected technology, or nil if none.
func (t *TechTable) SelectedItem() *domain.DetectedTechnology {
	if len(t.items) == 0 || t.selected < 0 || t.selected >= len(t.items) {
		return nil
	}
	return &t.items[t.selected]
}

// MoveUp moves selection up.
func (t *TechTable) MoveUp() {
	if t.selected > 0 {
		t.selected--
	}
}

// MoveDown moves selection down.
func (t *TechTable) MoveDown() {
	if t.selected < len(t.items)-1 {
		t.selected++
	}
}

// SetDimensions sets the table size.
func (t *TechTable) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}
