package domain

import (
	"fmt"
	"strings"
)

// DefaultAPIURL is the crawl API used when none is configured.
const DefaultAPIURL = "https://api.spider.cloud"

// DefaultCrawlLimit is the page limit per crawl request.
const DefaultCrawlLimit = 50

// ReturnFormat controls how the crawl API renders page content.
type ReturnFormat string

// Return formats accepted by the crawl API.
const (
	ReturnRaw      ReturnFormat = "raw"
	ReturnMarkdown ReturnFormat = "markdown"
	ReturnText     ReturnFormat = "text"
)

// IsValid returns true if the return format is recognised.
func (f ReturnFormat) IsValid() bool {
	switch f {
	case ReturnRaw, ReturnMarkdown, ReturnText:
		return true
	default:
		return false
	}
}

// RequestMode selects how the crawl API fetches pages.
type RequestMode string

// Request modes accepted by the crawl API.
const (
	RequestHTTP   RequestMode = "http"
	RequestChrome RequestMode = "chrome"
	RequestSmart  RequestMode = "smart"
)

// IsValid returns true if the request mode is recognised.
func (m RequestMode) IsValid() bool {
	switch m {
	case RequestHTTP, RequestChrome, RequestSmart:
		return true
	default:
		return false
	}
}

// CrawlOptions describes one crawl request.
type CrawlOptions struct {
	Targets       []string
	Limit         int
	ReturnFormat  ReturnFormat
	Request       RequestMode
	FullResources bool
}

// Validate checks the options and fills defaults for zero values.
func (o *CrawlOptions) Validate() error {
	if len(o.Targets) == 0 {
		return fmt.Errorf("%w: at least one url is required", ErrInvalidInput)
	}
	if o.Limit <= 0 {
		o.Limit = DefaultCrawlLimit
	}
	if o.ReturnFormat == "" {
		o.ReturnFormat = ReturnRaw
	}
	if !o.ReturnFormat.IsValid() {
		return fmt.Errorf("%w: unknown return format %q", ErrInvalidInput, o.ReturnFormat)
	}
	if o.Request == "" {
		o.Request = RequestSmart
	}
	if !o.Request.IsValid() {
		return fmt.Errorf("%w: unknown request mode %q", ErrInvalidInput, o.Request)
	}
	return nil
}

// ParseTargets splits a comma separated url list, trimming entries and
// prefixing https:// where no http(s) scheme is given.
func ParseTargets(input string) []string {
	parts := strings.Split(strings.TrimSpace(input), ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "http://") && !strings.HasPrefix(p, "https://") {
			p = "https://" + p
		}
		targets = append(targets, p)
	}
	return targets
}
