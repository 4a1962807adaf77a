// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Tool names as the agent sees them.
const (
	SearchToolName = "arxiv_search"
	ReadToolName   = "read_pdf"
	RenderToolName = "render_latex_pdf"
)

// PDFReader returns the text of a remote PDF.
type PDFReader interface {
	ReadPDF(ctx context.Context, url string) (string, error)
}

// DocumentRenderer compiles LaTeX markup to a PDF.
type DocumentRenderer interface {
	Render(ctx context.Context, markup string) (types.RenderResult, error)
}

// Deps are the implementations behind the research tools.
type Deps struct {
	Searcher   search.Searcher
	Reader     PDFReader
	Renderer   DocumentRenderer
	MaxResults int
}

// NewResearchRegistry registers the search, read, and render tools.
func NewResearchRegistry(deps Deps, logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	r.MustRegister(SearchTool(deps.Searcher, deps.MaxResults))
	r.MustRegister(ReadTool(deps.Reader))
	r.MustRegister(RenderTool(deps.Renderer))
	return r
}

// SearchTool returns the arXiv search tool. Its result is the JSON form of
// types.SearchResponse.
func SearchTool(s search.Searcher, maxResults int) *Tool {
	return &Tool{
		Name: SearchToolName,
		Description: "Search for academic papers on arXiv related to the given topic. " +
			"Returns a list of papers with their metadata including title, summary, " +
			"authors, categories, and pdf link.",
		Input: Parameter{
			Name:        "topic",
			Description: "The topic to search for papers. Plain words only; no parentheses or quotes.",
		},
		Execute: func(ctx context.Context, topic string) (string, error) {
			resp, err := s.Search(ctx, topic, maxResults)
			if err != nil {
				return "", err
			}
			data, err := json.Marshal(resp)
			if err != nil {
				return "", fmt.Errorf("encoding search results: %w", err)
			}
			return string(data), nil
		},
	}
}

// ReadTool returns the PDF reading tool.
func ReadTool(rd PDFReader) *Tool {
	return &Tool{
		Name:        ReadToolName,
		Description: "Read and extract text from a PDF located at the given URL. Returns the extracted text.",
		Input: Parameter{
			Name:        "url",
			Description: "The URL of the PDF file.",
		},
		Execute: func(ctx context.Context, url string) (string, error) {
			return rd.ReadPDF(ctx, url)
		},
	}
}

// RenderTool returns the LaTeX rendering tool. Its result is the absolute
// path of the generated PDF.
func RenderTool(rn DocumentRenderer) *Tool {
	return &Tool{
		Name:        RenderToolName,
		Description: "Render LaTeX content into a PDF file using Tectonic. Returns the path to the generated PDF file.",
		Input: Parameter{
			Name:        "latex_content",
			Description: "The LaTeX document content as a string.",
		},
		Execute: func(ctx context.Context, markup string) (string, error) {
			res, err := rn.Render(ctx, markup)
			if err != nil {
				return "", err
			}
			return res.PDFPath, nil
		},
	}
}
