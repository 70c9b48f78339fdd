package domain

// AggregationState holds the detections of one scan session.
// It is not safe for concurrent use; a single consumer drives it.
type AggregationState struct {
	// ValidPages counts every valid page ingested, including repeats.
	ValidPages int

	techs []*DetectedTechnology
	index map[string]int
}

// NewAggregationState returns an empty state for a new session.
func NewAggregationState() *AggregationState {
	return &AggregationState{
		index: make(map[string]int),
	}
}

// Lookup returns the technology with the given name.
func (s *AggregationState) Lookup(name string) (*DetectedTechnology, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.techs[i], true
}

// Add records a newly detected technology after the existing ones.
// If the name is already present the existing entry is returned unchanged.
func (s *AggregationState) Add(name, category string) *DetectedTechnology {
	if t, ok := s.Lookup(name); ok {
		return t
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	t := &DetectedTechnology{Name: name, Category: category}
	s.index[name] = len(s.techs)
	s.techs = append(s.techs, t)
	return t
}

// Each calls fn for every technology in order of first detection.
func (s *AggregationState) Each(fn func(t *DetectedTechnology)) {
	for _, t := range s.techs {
		fn(t)
	}
}

// Len returns the number of detected technologies.
func (s *AggregationState) Len() int {
	return len(s.techs)
}

// Technologies returns a copy of the detections in order of first detection.
func (s *AggregationState) Technologies() []DetectedTechnology {
	out := make([]DetectedTechnology, 0, len(s.techs))
	for _, t := range s.techs {
		out = append(out, t.clone())
	}
	return out
}

// Reset clears the state for a new session.
func (s *AggregationState) Reset() {
	s.ValidPages = 0
	s.techs = nil
	s.index = make(map[string]int)
}

// Clone returns a deep copy that can be read while the original keeps changing.
func (s *AggregationState) Clone() *AggregationState {
	c := &AggregationState{
		ValidPages: s.ValidPages,
		techs:      make([]*DetectedTechnology, 0, len(s.techs)),
		index:      make(map[string]int, len(s.index)),
	}
	for i, t := range s.techs {
		ct := t.clone()
		c.techs = append(c.techs, &ct)
		c.index[t.Name] = i
	}
	return c
}

// Summary returns the headline numbers for the session.
func (s *AggregationState) Summary() Summary {
	cats := make(map[string]struct{})
	hits := 0
	for _, t := range s.techs {
		cats[t.Category] = struct{}{}
		hits += len(t.Pages)
	}
	sum := Summary{
		Technologies: len(s.techs),
		Categories:   len(cats),
		PagesScanned: s.ValidPages,
	}
	if s.ValidPages > 0 {
		sum.AvgPerPage = float64(hits) / float64(s.ValidPages)
	}
	return sum
}

// Summary is the headline view of a session.
// AvgPerPage is the mean number of detections per valid page.
type Summary struct {
	Technologies int     `json:"technologies"`
	Categories   int     `json:"categories"`
	PagesScanned int     `json:"pagesScanned"`
	AvgPerPage   float64 `json:"avgPerPage"`
}
