package domain

// Settings holds the persisted application configuration.
type Settings struct {
	Crawl   CrawlSettings
	View    ViewSettings
	Queue   QueueSettings
	Archive ArchiveSettings
}

// CrawlSettings configures the crawl API source.
type CrawlSettings struct {
	APIURL        string
	APIKey        string
	Limit         int
	ReturnFormat  ReturnFormat
	Request       RequestMode
	FullResources bool
}

// HasAPIKey reports whether a key is configured.
func (c CrawlSettings) HasAPIKey() bool {
	return c.APIKey != ""
}

// Options builds crawl options for the given targets from these settings.
func (c CrawlSettings) Options(targets []string) CrawlOptions {
	return CrawlOptions{
		Targets:       targets,
		Limit:         c.Limit,
		ReturnFormat:  c.ReturnFormat,
		Request:       c.Request,
		FullResources: c.FullResources,
	}
}

// ViewSettings holds the default ordering for CLI and TUI views.
type ViewSettings struct {
	SortKey   SortKey
	Direction SortDirection
}

// Params returns view parameters for all categories using these defaults.
func (v ViewSettings) Params() ViewParams {
	return ViewParams{
		Filter:    FilterAll,
		SortKey:   v.SortKey,
		Direction: v.Direction,
	}.Normalise()
}

// QueueSettings configures the SQS page source.
type QueueSettings struct {
	URL    string
	Region string

	// MaxEmptyPolls ends a queue scan after this many empty receives in a row.
	// Zero keeps polling until cancelled.
	MaxEmptyPolls int
}

// ArchiveSettings controls saving crawled pages to the local archive.
type ArchiveSettings struct {
	Enabled bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Crawl: CrawlSettings{
			APIURL:       DefaultAPIURL,
			Limit:        DefaultCrawlLimit,
			ReturnFormat: ReturnRaw,
			Request:      RequestSmart,
		},
		View: ViewSettings{
			SortKey:   SortByPages,
			Direction: Descending,
		},
		Queue: QueueSettings{
			MaxEmptyPolls: 1,
		},
		Archive: ArchiveSettings{
			Enabled: true,
		},
	}
}
