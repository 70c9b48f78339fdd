package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func seededServer(t *testing.T) *Server {
	t.Helper()
	shared := newSession()
	for _, p := range examplePages() {
		shared.Ingest(p)
	}
	server, err := NewServer(&Ports{Detector: shared})
	require.NoError(t, err)
	return server
}

func TestServer_handleSignaturesResource(t *testing.T) {
	server := seededServer(t)

	result, err := server.handleSignaturesResource(context.Background(), makeReadResourceRequest("stackprobe://signatures"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "stackprobe://signatures", result.Contents[0].URI)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var sigs []struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &sigs))
	assert.Len(t, sigs, len(server.ports.Detector.Signatures()))
	assert.Contains(t, result.Contents[0].Text, `"name": "WordPress"`)
}

func TestServer_handleCategoriesResource(t *testing.T) {
	t.Run("seeded session", func(t *testing.T) {
		result, err := seededServer(t).handleCategoriesResource(context.Background(), makeReadResourceRequest("stackprobe://categories"))

		require.NoError(t, err)
		var counts []domain.CategoryCount
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &counts))
		assert.Equal(t, []domain.CategoryCount{
			{Category: domain.FilterAll, Count: 2},
			{Category: "CMS", Count: 1},
			{Category: "Framework", Count: 1},
		}, counts)
	})

	t.Run("empty session", func(t *testing.T) {
		server, err := NewServer(&Ports{Detector: newSession()})
		require.NoError(t, err)

		result, err := server.handleCategoriesResource(context.Background(), makeReadResourceRequest("stackprobe://categories"))

		require.NoError(t, err)
		assert.NotEqual(t, "null", result.Contents[0].Text)
	})
}

func TestServer_handleReportResource(t *testing.T) {
	result, err := seededServer(t).handleReportResource(context.Background(), makeReadResourceRequest("stackprobe://report"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "# Tech Stack Report")
	assert.Contains(t, result.Contents[0].Text, "| Next.js | Framework | 1 | 50% |")
}
