package connectors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/stackprobe/internal/connectors/archive"
	"github.com/custodia-labs/stackprobe/internal/connectors/file"
	"github.com/custodia-labs/stackprobe/internal/connectors/spider"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

type staticSettings struct {
	settings *domain.Settings
	err      error
}

func (s staticSettings) Get() (*domain.Settings, error) {
	return s.settings, s.err
}

func TestFactory_Create(t *testing.T) {
	defaults := domain.DefaultSettings()
	defaults.Crawl.APIKey = "key"
	factory := NewFactory(staticSettings{settings: &defaults}, memory.NewPageArchive(), strings.NewReader(""))
	ctx := context.Background()

	t.Run("crawl", func(t *testing.T) {
		src, err := factory.Create(ctx, domain.ScanRequest{
			Kind:  domain.SourceCrawl,
			Crawl: defaults.Crawl.Options([]string{"https://a.test"}),
		})
		require.NoError(t, err)
		assert.IsType(t, &spider.Source{}, src)
		assert.NoError(t, src.Validate(ctx))
	})

	t.Run("file", func(t *testing.T) {
		src, err := factory.Create(ctx, domain.ScanRequest{Kind: domain.SourceFile, Path: file.Stdin})
		require.NoError(t, err)
		assert.IsType(t, &file.Source{}, src)
		assert.Equal(t, "stdin", src.Name())
	})

	t.Run("archive", func(t *testing.T) {
		src, err := factory.Create(ctx, domain.ScanRequest{Kind: domain.SourceArchive, ArchiveID: "s1"})
		require.NoError(t, err)
		assert.IsType(t, &archive.Source{}, src)
		assert.ErrorIs(t, src.Validate(ctx), domain.ErrNotFound)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := factory.Create(ctx, domain.ScanRequest{Kind: "ftp"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestFactory_CrawlWithoutKey(t *testing.T) {
	factory := NewFactory(nil, nil, nil)

	src, err := factory.Create(context.Background(), domain.ScanRequest{
		Kind:  domain.SourceCrawl,
		Crawl: domain.DefaultSettings().Crawl.Options([]string{"https://a.test"}),
	})

	require.NoError(t, err)
	assert.ErrorIs(t, src.Validate(context.Background()), domain.ErrAuthRequired)
}

func TestFactory_SettingsError(t *testing.T) {
	factory := NewFactory(staticSettings{err: errors.New("disk")}, nil, nil)

	_, err := factory.Create(context.Background(), domain.ScanRequest{Kind: domain.SourceCrawl})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load settings: disk")
}
