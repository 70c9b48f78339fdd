package spider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/logger"
	"github.com/custodia-labs/stackprobe/internal/ndjson"
)

const (
	// DialTimeout bounds connecting to the API.
	DialTimeout = 30 * time.Second

	// ResponseHeaderTimeout bounds the wait for the first response byte.
	// There is no overall timeout so long crawls can keep streaming.
	ResponseHeaderTimeout = 30 * time.Second

	// contentType is what the API expects for streamed crawls.
	contentType = "application/jsonl"
)

// crawlRequest is the body of POST /crawl.
type crawlRequest struct {
	URL           string `json:"url"`
	Limit         int    `json:"limit"`
	ReturnFormat  string `json:"return_format"`
	Request       string `json:"request"`
	FullResources bool   `json:"full_resources,omitempty"`
}

// Client calls the crawl API with bearer authentication.
type Client struct {
	apiURL string
	http   *http.Client
}

// NewClient creates a crawl API client.
// An empty apiURL uses domain.DefaultAPIURL.
func NewClient(apiURL, apiKey string) *Client {
	if apiURL == "" {
		apiURL = domain.DefaultAPIURL
	}

	base := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: DialTimeout}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
		},
	}

	var hc *http.Client
	if apiKey == "" {
		hc = base
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, ts)
	}

	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   hc,
	}
}

// Crawl starts a crawl and calls emit for each page as it is received.
// It returns when the response ends, emit fails or ctx is cancelled.
func (c *Client) Crawl(ctx context.Context, opts domain.CrawlOptions, emit func(domain.Page) error) error {
	body, err := json.Marshal(crawlRequest{
		URL:           strings.Join(opts.Targets, ","),
		Limit:         opts.Limit,
		ReturnFormat:  string(opts.ReturnFormat),
		Request:       string(opts.Request),
		FullResources: opts.FullResources,
	})
	if err != nil {
		return fmt.Errorf("encoding crawl request: %w", err)
	}

	endpoint := c.apiURL + "/crawl"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating crawl request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	logger.Debug("POST %s (%d targets, limit %d)", endpoint, len(opts.Targets), opts.Limit)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("spider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("server returned %d", resp.StatusCode),
			URL:        endpoint,
		}
	}

	return ndjson.Decode(ctx, resp.Body, emit)
}
