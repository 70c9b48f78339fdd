package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceKind_IsValid(t *testing.T) {
	for _, k := range []SourceKind{SourceCrawl, SourceFile, SourceQueue, SourceArchive} {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, SourceKind("ftp").IsValid())
}

func TestScanRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ScanRequest
		wantErr bool
	}{
		{"crawl", ScanRequest{Kind: SourceCrawl, Crawl: CrawlOptions{Targets: []string{"https://a.test"}}}, false},
		{"crawl without targets", ScanRequest{Kind: SourceCrawl}, true},
		{"file", ScanRequest{Kind: SourceFile, Path: "-"}, false},
		{"file without path", ScanRequest{Kind: SourceFile}, true},
		{"queue", ScanRequest{Kind: SourceQueue, Queue: QueueSettings{URL: "https://sqs.test/q"}}, false},
		{"queue without url", ScanRequest{Kind: SourceQueue}, true},
		{"archive", ScanRequest{Kind: SourceArchive, ArchiveID: "abc"}, false},
		{"archive without id", ScanRequest{Kind: SourceArchive}, true},
		{"unknown", ScanRequest{Kind: "ftp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestScanRequest_Label(t *testing.T) {
	assert.Equal(t, "crawl https://a.test,https://b.test",
		ScanRequest{Kind: SourceCrawl, Crawl: CrawlOptions{Targets: []string{"https://a.test", "https://b.test"}}}.Label())
	assert.Equal(t, "stdin", ScanRequest{Kind: SourceFile, Path: "-"}.Label())
	assert.Equal(t, "file pages.jsonl", ScanRequest{Kind: SourceFile, Path: "pages.jsonl"}.Label())
	assert.Equal(t, "archive abc", ScanRequest{Kind: SourceArchive, ArchiveID: "abc"}.Label())
}
