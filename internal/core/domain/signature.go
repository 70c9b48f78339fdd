package domain

// Signature is a named rule used to detect one technology in page content.
type Signature struct {
	// Name is unique across the catalog.
	Name string

	// Category groups technologies for filtering (e.g. "CMS", "Analytics").
	Category string

	// Match reports whether the technology appears in the given HTML.
	// It must be a pure function of its input.
	Match func(content string) bool
}
