// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Keyword  string    `yaml:"keyword,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// FormatCSL writes search results as a CSL-YAML list to w.
func FormatCSL(resp types.SearchResponse, w io.Writer) error {
	items := make([]CSLItem, len(resp.Entries))
	for i, r := range resp.Entries {
		items[i] = toCSLItem(r, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a PaperRecord to a CSLItem. The arXiv ID from the PDF
// link is the citation key; records without one fall back to their position.
func toCSLItem(r types.PaperRecord, pos int) CSLItem {
	id := extractArxivID(r.PDF)
	if id == "" {
		id = "paper-" + strconv.Itoa(pos+1)
	}
	item := CSLItem{
		ID:       id,
		Type:     "article",
		Title:    strings.Join(strings.Fields(r.Title), " "),
		Abstract: r.Summary,
		Keyword:  strings.Join(r.Categories, ", "),
		URL:      r.PDF,
	}
	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// extractArxivID pulls the arXiv ID from an abs or pdf URL
// (e.g. "http://arxiv.org/pdf/2301.07041v1" -> "2301.07041").
func extractArxivID(link string) string {
	var id string
	for _, prefix := range []string{"/abs/", "/pdf/"} {
		if idx := strings.Index(link, prefix); idx >= 0 {
			id = link[idx+len(prefix):]
			break
		}
	}
	if id == "" {
		return ""
	}
	id = strings.TrimSuffix(id, ".pdf")

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
