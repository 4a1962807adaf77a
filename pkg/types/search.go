// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant
// tool layer: paper records returned by search, render results, and the
// per-tool configuration structs populated from viper.
package types

// PaperRecord represents one paper returned by an arXiv query. Records are
// produced fresh for each search call and never persisted.
type PaperRecord struct {
	// Title is the paper title as returned by the feed, trimmed.
	Title string `json:"title" yaml:"title"`

	// Summary is the paper abstract, trimmed.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists the category terms attached to the entry.
	Categories []string `json:"categories" yaml:"categories"`

	// PDF is the first link of type application/pdf, or empty when the
	// entry carries none.
	PDF string `json:"pdf,omitempty" yaml:"pdf,omitempty"`
}

// SearchResponse is the value returned to the agent by the search tool.
type SearchResponse struct {
	Entries []PaperRecord `json:"entries" yaml:"entries"`
}
