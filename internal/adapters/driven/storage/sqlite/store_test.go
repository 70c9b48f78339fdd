package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testPages() []domain.Page {
	return []domain.Page{
		{URL: "https://a.test/", Content: "<html>wp-content</html>"},
		{URL: "https://a.test/about", Content: "<html>__NEXT_DATA__</html>"},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "archive.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsRunOnce(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.PageArchive().Save(context.Background(),
		domain.ArchiveSession{ID: "s1", Source: "crawl"}, testPages()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var versions int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	session, err := second.PageArchive().Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, session.PageCount)
}

func TestPageArchive_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	archive := setupTestStore(t).PageArchive()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := archive.Save(ctx, domain.ArchiveSession{
		ID:        "s1",
		Source:    "crawl",
		Targets:   []string{"https://a.test"},
		CreatedAt: created,
	}, testPages())
	require.NoError(t, err)

	session, err := archive.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "crawl", session.Source)
	assert.Equal(t, []string{"https://a.test"}, session.Targets)
	assert.Equal(t, 2, session.PageCount)
	assert.True(t, created.Equal(session.CreatedAt))

	pages, err := archive.Pages(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, testPages(), pages)
}

func TestPageArchive_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	archive := setupTestStore(t).PageArchive()

	require.NoError(t, archive.Save(ctx, domain.ArchiveSession{ID: "s1", Source: "crawl"}, testPages()))
	require.NoError(t, archive.Save(ctx, domain.ArchiveSession{ID: "s1", Source: "file"}, testPages()[:1]))

	session, err := archive.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "file", session.Source)
	assert.Equal(t, 1, session.PageCount)

	pages, err := archive.Pages(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestPageArchive_SaveRequiresID(t *testing.T) {
	archive := setupTestStore(t).PageArchive()

	err := archive.Save(context.Background(), domain.ArchiveSession{}, testPages())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPageArchive_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	archive := setupTestStore(t).PageArchive()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, archive.Save(ctx, domain.ArchiveSession{ID: "old", Source: "crawl", CreatedAt: base}, nil))
	require.NoError(t, archive.Save(ctx, domain.ArchiveSession{ID: "new", Source: "crawl", CreatedAt: base.Add(time.Hour)}, nil))

	sessions, err := archive.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].ID)
	assert.Equal(t, "old", sessions[1].ID)
	assert.Equal(t, []string{}, sessions[0].Targets)
}

func TestPageArchive_ListEmpty(t *testing.T) {
	sessions, err := setupTestStore(t).PageArchive().List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestPageArchive_NotFound(t *testing.T) {
	ctx := context.Background()
	archive := setupTestStore(t).PageArchive()

	_, err := archive.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = archive.Pages(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageArchive_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	archive := store.PageArchive()
	require.NoError(t, archive.Save(ctx, domain.ArchiveSession{ID: "s1", Source: "crawl"}, testPages()))

	require.NoError(t, archive.Delete(ctx, "s1"))

	_, err := archive.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var remaining int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM archive_pages").Scan(&remaining))
	assert.Zero(t, remaining)
}
