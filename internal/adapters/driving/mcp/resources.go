package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for stackprobe resources.
	uriScheme = "stackprobe://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "signatures",
		Name:        "signatures",
		Description: "Technologies that can be detected, with their categories",
		MIMEType:    "application/json",
	}, s.handleSignaturesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Category filters of the shared session with technology counts",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "Markdown report of the shared session",
		MIMEType:    "text/markdown",
	}, s.handleReportResource)
}

// handleSignaturesResource lists the signature catalog.
func (s *Server) handleSignaturesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type signatureInfo struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}

	sigs := s.ports.Detector.Signatures()
	infos := make([]signatureInfo, len(sigs))
	for i, sig := range sigs {
		infos[i] = signatureInfo{Name: sig.Name, Category: sig.Category}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleCategoriesResource lists the shared session's category counts.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	counts := s.ports.Detector.Categories()
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	return jsonResource(req.Params.URI, counts)
}

// handleReportResource renders the shared session as Markdown.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text, err := s.ports.Detector.Export(domain.DefaultViewParams(), domain.FormatMarkdown)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
