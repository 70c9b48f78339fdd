package connectors

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/stackprobe/internal/connectors/archive"
	"github.com/custodia-labs/stackprobe/internal/connectors/file"
	"github.com/custodia-labs/stackprobe/internal/connectors/spider"
	"github.com/custodia-labs/stackprobe/internal/connectors/sqs"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// SettingsProvider supplies the current crawl settings.
type SettingsProvider interface {
	Get() (*domain.Settings, error)
}

// Factory creates page sources from scan requests.
type Factory struct {
	settings SettingsProvider
	archive  driven.PageArchive
	stdin    io.Reader
}

// NewFactory creates a factory. archive may be nil when no archive is
// configured; replay requests then fail validation.
func NewFactory(settings SettingsProvider, archive driven.PageArchive, stdin io.Reader) *Factory {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Factory{settings: settings, archive: archive, stdin: stdin}
}

// Create returns the page source for req.
func (f *Factory) Create(ctx context.Context, req domain.ScanRequest) (driven.PageSource, error) {
	switch req.Kind {
	case domain.SourceCrawl:
		settings, err := f.crawlSettings()
		if err != nil {
			return nil, err
		}
		return spider.New(settings, req.Crawl), nil

	case domain.SourceFile:
		return file.New(req.Path, req.Follow, file.WithStdin(f.stdin)), nil

	case domain.SourceQueue:
		src, err := sqs.NewFromSettings(ctx, req.Queue)
		if err != nil {
			return nil, err
		}
		return src, nil

	case domain.SourceArchive:
		return archive.New(f.archive, req.ArchiveID), nil

	default:
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, req.Kind)
	}
}

func (f *Factory) crawlSettings() (domain.CrawlSettings, error) {
	if f.settings == nil {
		return domain.DefaultSettings().Crawl, nil
	}
	s, err := f.settings.Get()
	if err != nil {
		return domain.CrawlSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return s.Crawl, nil
}
