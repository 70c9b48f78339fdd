// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// SortName, SortCategory, SortPages and SortConfidence select a column;
	// pressing the active one reverses it.
	SortName       key.Binding
	SortCategory   key.Binding
	SortPages      key.Binding
	SortConfidence key.Binding

	// NextFilter and PrevFilter cycle the category filter.
	NextFilter key.Binding
	PrevFilter key.Binding

	// Up and Down move the table selection.
	Up   key.Binding
	Down key.Binding

	// ExportJSON, ExportCSV and ExportMarkdown write the current view.
	ExportJSON     key.Binding
	ExportCSV      key.Binding
	ExportMarkdown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "name"),
		),
		SortCategory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "category"),
		),
		SortPages: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "pages"),
		),
		SortConfidence: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "confidence"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "filter"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "json"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "csv"),
		),
		ExportMarkdown: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "md"),
		),
	}
}

// ShortHelp returns the hints shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortName, k.SortCategory, k.SortPages, k.SortConfidence, k.NextFilter, k.ExportJSON, k.ExportCSV, k.ExportMarkdown, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortName, k.SortCategory, k.SortPages, k.SortConfidence},
		{k.NextFilter, k.PrevFilter, k.Up, k.Down},
		{k.ExportJSON, k.ExportCSV, k.ExportMarkdown, k.Quit},
	}
}

// SortKeyFor returns the sort key bound to keyStr, if any.
func (k *KeyMap) SortKeyFor(keyStr string) (domain.SortKey, bool) {
	switch {
	case Matches(keyStr, k.SortName):
		return domain.SortByName, true
	case Matches(keyStr, k.SortCategory):
		return domain.SortByCategory, true
	case Matches(keyStr, k.SortPages):
		return domain.SortByPages, true
	case Matches(keyStr, k.SortConfidence):
		return domain.SortByConfidence, true
	}
	return "", false
}

// ExportFormatFor returns the export format bound to keyStr, if any.
func (k *KeyMap) ExportFormatFor(keyStr string) (domain.ExportFormat, bool) {
	switch {
	case Matches(keyStr, k.ExportJSON):
		return domain.FormatJSON, true
	case Matches(keyStr, k.ExportCSV):
		return domain.FormatCSV, true
	case Matches(keyStr, k.ExportMarkdown):
		return domain.FormatMarkdown, true
	}
	return "", false
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
