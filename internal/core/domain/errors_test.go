package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrScanInProgress", ErrScanInProgress},
		{"ErrSourceClosed", ErrSourceClosed},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrArchiveUnavailable", ErrArchiveUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("parse sort: %w", ErrInvalidInput)

	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestPage_Valid(t *testing.T) {
	assert.True(t, Page{URL: "https://a.test/", Content: "<html></html>"}.Valid())
	assert.False(t, Page{URL: "https://a.test/"}.Valid())
	assert.False(t, Page{Content: "<html></html>"}.Valid())
	assert.False(t, Page{}.Valid())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultAPIURL, s.Crawl.APIURL)
	assert.Equal(t, 50, s.Crawl.Limit)
	assert.Equal(t, ReturnRaw, s.Crawl.ReturnFormat)
	assert.Equal(t, RequestSmart, s.Crawl.Request)
	assert.False(t, s.Crawl.FullResources)
	assert.False(t, s.Crawl.HasAPIKey())
	assert.Equal(t, DefaultViewParams(), s.View.Params())
}
