package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

// ViewInput selects the filter and ordering of a report.
type ViewInput struct {
	Filter    string `json:"filter,omitempty" jsonschema:"category to show, or all (default all)"`
	Sort      string `json:"sort,omitempty" jsonschema:"name, category, pages or confidence (default pages)"`
	Direction string `json:"direction,omitempty" jsonschema:"asc or desc (default desc)"`
}

// PageInput is one crawled page.
type PageInput struct {
	URL     string `json:"url" jsonschema:"page URL"`
	Content string `json:"content" jsonschema:"page HTML"`
}

// DetectInput is the input schema for the detect tool.
type DetectInput struct {
	Pages []PageInput `json:"pages" jsonschema:"pages to classify"`
	ViewInput
}

// CrawlInput is the input schema for the crawl tool.
type CrawlInput struct {
	URLs  []string `json:"urls" jsonschema:"sites to crawl; https:// is assumed when no scheme is given"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum pages per site (default from settings)"`
}

// ExportInput is the input schema for the export tool.
type ExportInput struct {
	Format string `json:"format" jsonschema:"json, csv or markdown"`
	ViewInput
}

// TechnologyOutput is one detected technology.
type TechnologyOutput struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	PagesDetected int      `json:"pagesDetected"`
	Confidence    string   `json:"confidence"`
	Pages         []string `json:"pages"`
}

// DetectOutput is the output schema for the detect tool.
type DetectOutput struct {
	Summary      domain.Summary     `json:"summary"`
	Technologies []TechnologyOutput `json:"technologies"`
}

// CrawlOutput is the output schema for the crawl tool.
type CrawlOutput struct {
	SessionID     string         `json:"sessionId"`
	PagesReceived int            `json:"pagesReceived"`
	ValidPages    int            `json:"validPages"`
	Cancelled     bool           `json:"cancelled,omitempty"`
	Partial       bool           `json:"partial,omitempty"`
	Warning       string         `json:"warning,omitempty"`
	Message       string         `json:"message"`
	Summary       domain.Summary `json:"summary"`
}

// ExportOutput is the output schema for the export tool.
type ExportOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect",
		Description: "Detect technologies in the given pages. Uses a fresh session each call.",
	}, s.handleDetect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "crawl",
		Description: "Crawl websites into the shared session and summarise the technologies found",
	}, s.handleCrawl)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export",
		Description: "Export the shared session as JSON, CSV or Markdown",
	}, s.handleExport)
}

// handleDetect classifies the input pages in an isolated session.
func (s *Server) handleDetect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DetectInput,
) (*mcp.CallToolResult, DetectOutput, error) {
	if len(input.Pages) == 0 {
		return nil, DetectOutput{}, ErrNoPages
	}
	if s.ports.NewSession == nil {
		return nil, DetectOutput{}, ErrSessionsUnavailable
	}

	params, err := input.params()
	if err != nil {
		return nil, DetectOutput{}, err
	}

	session := s.ports.NewSession()
	session.Reset("")
	for _, p := range input.Pages {
		session.Ingest(domain.Page{URL: p.URL, Content: p.Content})
	}

	return nil, DetectOutput{
		Summary:      session.Summary(),
		Technologies: technologies(session.Snapshot(params)),
	}, nil
}

// handleCrawl runs a crawl into the shared session.
func (s *Server) handleCrawl(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CrawlInput,
) (*mcp.CallToolResult, CrawlOutput, error) {
	if s.ports.Scan == nil {
		return nil, CrawlOutput{}, ErrScanUnavailable
	}

	var targets []string
	for _, u := range input.URLs {
		targets = append(targets, domain.ParseTargets(u)...)
	}
	if len(targets) == 0 {
		return nil, CrawlOutput{}, ErrNoURLs
	}

	crawl := domain.DefaultSettings().Crawl
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			crawl = settings.Crawl
		}
	}
	opts := crawl.Options(targets)
	if input.Limit > 0 {
		opts.Limit = input.Limit
	}

	result, err := s.ports.Scan.Scan(ctx, domain.ScanRequest{Kind: domain.SourceCrawl, Crawl: opts})
	if err != nil {
		return nil, CrawlOutput{}, fmt.Errorf("crawl failed: %w", err)
	}

	return nil, CrawlOutput{
		SessionID:     result.SessionID,
		PagesReceived: result.PagesReceived,
		ValidPages:    result.ValidPages,
		Cancelled:     result.Cancelled,
		Partial:       result.Partial,
		Warning:       result.Warning,
		Message:       result.Message,
		Summary:       result.Summary,
	}, nil
}

// handleExport renders the shared session.
func (s *Server) handleExport(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	format, err := domain.ParseExportFormat(input.Format)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	params, err := input.params()
	if err != nil {
		return nil, ExportOutput{}, err
	}

	text, err := s.ports.Detector.Export(params, format)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{Format: format.String(), Content: text}, nil
}

func (v ViewInput) params() (domain.ViewParams, error) {
	p := domain.DefaultViewParams()
	if v.Filter != "" {
		p.Filter = v.Filter
	}
	if v.Sort != "" {
		key, err := domain.ParseSortKey(v.Sort)
		if err != nil {
			return p, err
		}
		p.SortKey = key
	}
	if v.Direction != "" {
		d := domain.SortDirection(v.Direction)
		if !d.IsValid() {
			return p, fmt.Errorf("%w: direction must be asc or desc", domain.ErrInvalidInput)
		}
		p.Direction = d
	}
	return p, nil
}

func technologies(snapshot domain.ViewSnapshot) []TechnologyOutput {
	out := make([]TechnologyOutput, len(snapshot.Items))
	for i := range snapshot.Items {
		t := &snapshot.Items[i]
		out[i] = TechnologyOutput{
			Name:          t.Name,
			Category:      t.Category,
			PagesDetected: t.PageCount(),
			Confidence:    fmt.Sprintf("%d%%", t.Percent()),
			Pages:         append([]string(nil), t.Pages...),
		}
	}
	return out
}
