package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

const twoPages = `{"url":"https://a.test/","content":"wp-content"}
garbage
{"url":"https://a.test/b","content":"__NEXT_DATA__"}`

func drain(t *testing.T, pagesCh <-chan domain.Page, errsCh <-chan error) ([]domain.Page, error) {
	t.Helper()
	var pages []domain.Page
	var err error
	timeout := time.After(5 * time.Second)
	for pagesCh != nil || errsCh != nil {
		select {
		case p, ok := <-pagesCh:
			if !ok {
				pagesCh = nil
				continue
			}
			pages = append(pages, p)
		case e, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			err = e
		case <-timeout:
			t.Fatal("stream did not finish")
		}
	}
	return pages, err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSource_ReadsFile(t *testing.T) {
	src := New(writeFile(t, twoPages), false)
	require.NoError(t, src.Validate(context.Background()))

	pagesCh, errsCh := src.Stream(context.Background())
	pages, err := drain(t, pagesCh, errsCh)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "https://a.test/", pages[0].URL)
	assert.Equal(t, "__NEXT_DATA__", pages[1].Content)
	assert.NoError(t, src.Close())
}

func TestSource_ReadsStdin(t *testing.T) {
	src := New(Stdin, false, WithStdin(strings.NewReader(twoPages)))
	require.NoError(t, src.Validate(context.Background()))

	pagesCh, errsCh := src.Stream(context.Background())
	pages, err := drain(t, pagesCh, errsCh)

	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, "stdin", src.Name())
}

func TestSource_Validate(t *testing.T) {
	tests := []struct {
		name    string
		src     *Source
		wantErr bool
	}{
		{"empty path", New("", false), true},
		{"missing file", New(filepath.Join(t.TempDir(), "nope.jsonl"), false), true},
		{"directory", New(t.TempDir(), false), true},
		{"follow stdin", New(Stdin, true), true},
		{"stdin", New(Stdin, false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.src.Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSource_Follow(t *testing.T) {
	path := writeFile(t, `{"url":"https://a.test/","content":"wp-content"}`+"\n")
	src := New(path, true, WithDebounce(10*time.Millisecond))
	require.NoError(t, src.Validate(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pagesCh, errsCh := src.Stream(ctx)

	first := <-pagesCh
	assert.Equal(t, "https://a.test/", first.URL)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString(`{"url":"https://a.test/b","content":"__NEXT`)
	require.NoError(t, err)
	_, err = f.WriteString(`_DATA__"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case second := <-pagesCh:
		assert.Equal(t, "https://a.test/b", second.URL)
		assert.Equal(t, "__NEXT_DATA__", second.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("appended page was not read")
	}

	cancel()
	_, err = drain(t, pagesCh, errsCh)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_FollowFlushesTrailingRecordOnCancel(t *testing.T) {
	path := writeFile(t, `{"url":"https://a.test/","content":"wp-content"}`+"\n"+
		`{"url":"https://a.test/tail","content":"__NEXT_DATA__"}`)
	src := New(path, true, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pagesCh, errsCh := src.Stream(ctx)

	first := <-pagesCh
	assert.Equal(t, "https://a.test/", first.URL)

	cancel()
	pages, err := drain(t, pagesCh, errsCh)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://a.test/tail", pages[0].URL)
}

func TestSource_FollowReopensReplacedFile(t *testing.T) {
	path := writeFile(t, `{"url":"https://a.test/","content":"wp-content"}`+"\n")
	src := New(path, true, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pagesCh, errsCh := src.Stream(ctx)

	first := <-pagesCh
	assert.Equal(t, "https://a.test/", first.URL)

	replacement := filepath.Join(filepath.Dir(path), "pages.jsonl.tmp")
	require.NoError(t, os.WriteFile(replacement,
		[]byte(`{"url":"https://b.test/","content":"__NEXT_DATA__"}`+"\n"), 0600))
	require.NoError(t, os.Rename(replacement, path))

	select {
	case second := <-pagesCh:
		assert.Equal(t, "https://b.test/", second.URL)
	case <-time.After(5 * time.Second):
		t.Fatal("replaced file was not read")
	}

	cancel()
	_, err := drain(t, pagesCh, errsCh)
	assert.ErrorIs(t, err, context.Canceled)
}
