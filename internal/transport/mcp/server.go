// Package mcp exposes the query service as a Model Context Protocol tool,
// so assistants can search the index over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
)

// ErrMissingSearcher is returned when no search service is provided.
var ErrMissingSearcher = errors.New("mcp: search service is required")

// Searcher returns raw hits for a validated query.
type Searcher interface {
	Hits(ctx context.Context, req *request.Request) ([]result.Hit, error)
}

// Server is the MCP server for docsearch.
type Server struct {
	search   Searcher
	pageSize int
	server   *mcp.Server
}

// NewServer creates an MCP server with the search tool registered.
func NewServer(search Searcher, pageSize int, version string) (*Server, error) {
	if search == nil {
		return nil, ErrMissingSearcher
	}

	s := &Server{
		search:   search,
		pageSize: pageSize,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "docsearch",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query       string `json:"query" jsonschema:"keywords matched against document title and content"`
	ContentType string `json:"content_type,omitempty" jsonschema:"optional exact filter: news, tutorial, review or report"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// SearchResult is one hit.
type SearchResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	ContentType string  `json:"content_type"`
	Score       float64 `json:"score"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Keyword search over indexed documents, optionally filtered by content type",
	}, s.handleSearch)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := request.New(input.Query, input.ContentType, s.pageSize)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	hits, err := s.search.Hits(ctx, &req)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search: %w", err)
	}

	out := SearchOutput{
		Query:   input.Query,
		Results: make([]SearchResult, len(hits)),
		Count:   len(hits),
	}
	for i := range hits {
		item := hits[i].Item()
		out.Results[i] = SearchResult{
			ID:          hits[i].ID(),
			Title:       item.Title(),
			Snippet:     item.Snippet(),
			ContentType: string(hits[i].ContentType()),
			Score:       hits[i].Score(),
		}
	}
	return nil, out, nil
}
