// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search translates a research topic into an arXiv query and parses
// the Atom feed into paper records.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Searcher finds papers for a topic. ArxivClient is the production
// implementation; tools depend on this interface so tests can substitute it.
type Searcher interface {
	Search(ctx context.Context, topic string, maxResults int) (types.SearchResponse, error)
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(resp types.SearchResponse, w io.Writer) {
	if len(resp.Entries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-12s  %s\n",
		"Rank", "Title", "Authors", "Category", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, r := range resp.Entries {
		title := truncate(strings.Join(strings.Fields(r.Title), " "), 60)
		category := ""
		if len(r.Categories) > 0 {
			category = truncate(r.Categories[0], 12)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-12s  %s\n",
			i+1, title, formatAuthors(r.Authors), category, r.PDF)
	}

	fmt.Fprintf(w, "\n%d results\n", len(resp.Entries))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(resp types.SearchResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// FormatYAML writes results as YAML to w.
func FormatYAML(resp types.SearchResponse, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(resp); err != nil {
		return err
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
