package domain

import "math"

// DetectedTechnology is a technology found on at least one page of a session.
type DetectedTechnology struct {
	Name     string
	Category string

	// Pages lists the URLs the technology was seen on, in first-seen order,
	// without duplicates.
	Pages []string

	// Confidence is len(Pages) divided by the valid pages processed so far.
	Confidence float64

	// seen indexes Pages. It is built on the first AddPage and kept in step
	// with Pages by AddPage only.
	seen map[string]struct{}
}

// HasPage reports whether url is already attributed to the technology.
func (t *DetectedTechnology) HasPage(url string) bool {
	if t.seen != nil {
		_, ok := t.seen[url]
		return ok
	}
	for _, p := range t.Pages {
		if p == url {
			return true
		}
	}
	return false
}

// AddPage appends url unless already present. It returns true when added.
func (t *DetectedTechnology) AddPage(url string) bool {
	if t.seen == nil {
		t.seen = make(map[string]struct{}, len(t.Pages)+1)
		for _, p := range t.Pages {
			t.seen[p] = struct{}{}
		}
	}
	if _, ok := t.seen[url]; ok {
		return false
	}
	t.seen[url] = struct{}{}
	t.Pages = append(t.Pages, url)
	return true
}

// PageCount returns the number of distinct pages.
func (t *DetectedTechnology) PageCount() int {
	return len(t.Pages)
}

// Percent returns the confidence as a whole percentage, rounding half up.
func (t *DetectedTechnology) Percent() int {
	return Percent(t.Confidence)
}

// Percent converts a ratio in [0,1] to a whole percentage, rounding half up.
func Percent(ratio float64) int {
	return int(math.Floor(ratio*100 + 0.5))
}

// clone returns a deep copy so readers never share the Pages backing array.
// The page index is left out; a clone that is written to rebuilds it.
func (t *DetectedTechnology) clone() DetectedTechnology {
	c := *t
	c.Pages = append([]string(nil), t.Pages...)
	c.seen = nil
	return c
}
