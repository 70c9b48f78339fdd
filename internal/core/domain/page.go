package domain

// Page is one crawled unit of content as delivered by an ingestion source.
// Records carry more fields on the wire; only url and content matter here.
type Page struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Valid reports whether the page can be classified.
// A page missing either its URL or its content is ignored by the aggregator.
func (p Page) Valid() bool {
	return p.URL != "" && p.Content != ""
}
