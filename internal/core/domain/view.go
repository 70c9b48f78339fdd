package domain

import "fmt"

// FilterAll is the filter value that passes every category.
const FilterAll = "all"

// SortKey selects the column a view is ordered by.
type SortKey string

// Available sort keys.
const (
	SortByName       SortKey = "name"
	SortByCategory   SortKey = "category"
	SortByPages      SortKey = "pages"
	SortByConfidence SortKey = "confidence"
)

// SortKeys lists the sort keys in column order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByCategory, SortByPages, SortByConfidence}
}

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByCategory, SortByPages, SortByConfidence:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SortKey) String() string {
	return string(k)
}

// ParseSortKey converts user input into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, s)
	}
	return k, nil
}

// SortDirection orders a view ascending or descending.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// IsValid returns true if the direction is recognised.
func (d SortDirection) IsValid() bool {
	return d == Ascending || d == Descending
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// String returns the string representation.
func (d SortDirection) String() string {
	return string(d)
}

// ViewParams selects how a session is filtered and ordered.
type ViewParams struct {
	Filter    string
	SortKey   SortKey
	Direction SortDirection
}

// DefaultViewParams returns the view shown before the user picks anything:
// every category, most pages first.
func DefaultViewParams() ViewParams {
	return ViewParams{
		Filter:    FilterAll,
		SortKey:   SortByPages,
		Direction: Descending,
	}
}

// Normalise fills empty or unknown fields with defaults.
func (p ViewParams) Normalise() ViewParams {
	d := DefaultViewParams()
	if p.Filter == "" {
		p.Filter = d.Filter
	}
	if !p.SortKey.IsValid() {
		p.SortKey = d.SortKey
	}
	if !p.Direction.IsValid() {
		p.Direction = d.Direction
	}
	return p
}

// Toggle applies a column click: the active key flips direction,
// any other key becomes active in descending order.
func (p ViewParams) Toggle(key SortKey) ViewParams {
	if p.SortKey == key {
		p.Direction = p.Direction.Flip()
		return p
	}
	p.SortKey = key
	p.Direction = Descending
	return p
}

// ViewSnapshot is a filtered, sorted read of an aggregation state.
type ViewSnapshot struct {
	Items     []DetectedTechnology
	Filter    string
	SortKey   SortKey
	Direction SortDirection
}

// CategoryCount pairs a filter value with the technologies it would show.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
