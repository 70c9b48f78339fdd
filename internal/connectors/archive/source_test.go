package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

func seeded(t *testing.T) *memory.PageArchive {
	t.Helper()
	store := memory.NewPageArchive()
	err := store.Save(context.Background(), domain.ArchiveSession{
		ID:        "s1",
		Source:    "crawl https://a.test",
		Targets:   []string{"https://a.test"},
		CreatedAt: time.Now(),
	}, []domain.Page{
		{URL: "https://a.test/", Content: "wp-content"},
		{URL: "https://a.test/b", Content: "_next/static"},
	})
	require.NoError(t, err)
	return store
}

func TestSource_Stream(t *testing.T) {
	src := New(seeded(t), "s1")
	require.NoError(t, src.Validate(context.Background()))

	pagesCh, errsCh := src.Stream(context.Background())
	var got []string
	for p := range pagesCh {
		got = append(got, p.URL)
	}

	assert.NoError(t, <-errsCh)
	assert.Equal(t, []string{"https://a.test/", "https://a.test/b"}, got)
	assert.Equal(t, "archive s1", src.Name())
	assert.NoError(t, src.Close())
}

func TestSource_Validate(t *testing.T) {
	t.Run("unknown session", func(t *testing.T) {
		err := New(seeded(t), "missing").Validate(context.Background())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no archive", func(t *testing.T) {
		err := New(nil, "s1").Validate(context.Background())
		assert.ErrorIs(t, err, domain.ErrArchiveUnavailable)
	})
}

func TestSource_StreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pagesCh, errsCh := New(seeded(t), "s1").Stream(ctx)

	<-pagesCh
	cancel()
	for range pagesCh {
	}

	err := <-errsCh
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
