package spider

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source streams the pages of one crawl.
type Source struct {
	client *Client
	apiKey string
	opts   domain.CrawlOptions
}

// New creates a crawl source.
func New(settings domain.CrawlSettings, opts domain.CrawlOptions) *Source {
	return &Source{
		client: NewClient(settings.APIURL, settings.APIKey),
		apiKey: settings.APIKey,
		opts:   opts,
	}
}

// Name returns a short label for the crawl.
func (s *Source) Name() string {
	return "crawl " + strings.Join(s.opts.Targets, ",")
}

// Validate checks the API key and crawl options without calling the API.
func (s *Source) Validate(_ context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: %w", domain.ErrAuthRequired, ErrMissingAPIKey)
	}
	return s.opts.Validate()
}

// Stream starts the crawl.
func (s *Source) Stream(ctx context.Context) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		err := s.client.Crawl(ctx, s.opts, func(p domain.Page) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pages <- p:
				return nil
			}
		})
		if err != nil {
			errs <- err
		}
	}()

	return pages, errs
}

// Close releases resources.
func (s *Source) Close() error {
	s.client.http.CloseIdleConnections()
	return nil
}
