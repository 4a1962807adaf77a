// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultEndpoint is the public arXiv query endpoint.
const DefaultEndpoint = "https://export.arxiv.org/api/query"

// DefaultMaxResults is used when the caller passes a non-positive limit.
const DefaultMaxResults = 5

const pdfMedia = "application/pdf"

// disallowedChars may not appear in a normalized query.
var disallowedChars = []string{"(", ")", `"`, " "}

// ArxivClient queries the arXiv API for recent papers on a topic.
type ArxivClient struct {
	Client    *http.Client
	Endpoint  string
	UserAgent string
	Logger    *zap.Logger
}

// NewArxivClient builds a client from config. A nil http.Client gets the
// shared default timeout.
func NewArxivClient(client *http.Client, httpCfg types.HTTPConfig, cfg types.SearchConfig, logger *zap.Logger) *ArxivClient {
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &ArxivClient{
		Client:    client,
		Endpoint:  endpoint,
		UserAgent: httpCfg.UserAgent,
		Logger:    logging.OrNop(logger),
	}
}

// Search queries arXiv for topic and returns up to maxResults entries,
// newest submission first.
func (c *ArxivClient) Search(ctx context.Context, topic string, maxResults int) (types.SearchResponse, error) {
	log := logging.OrNop(c.Logger)

	query, err := NormalizeQuery(topic)
	if err != nil {
		log.Warn("rejected arXiv query", zap.String("topic", topic), zap.Error(err))
		return types.SearchResponse{}, err
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	reqURL := buildArxivURL(endpoint, query, maxResults)
	log.Info("making request to arXiv API", zap.String("url", reqURL))

	resp, err := httputil.Get(ctx, c.Client, reqURL, c.UserAgent)
	if err != nil {
		log.Error("arXiv API request failed", zap.Error(err))
		return types.SearchResponse{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadAllLimited(resp.Body, 0)
	if err != nil {
		log.Error("reading arXiv response failed", zap.Error(err))
		return types.SearchResponse{}, fmt.Errorf("reading arXiv response: %w", err)
	}

	if !httputil.IsSuccess(resp.StatusCode) {
		log.Error("arXiv API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return types.SearchResponse{}, &SearchServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	entries, err := ParseFeed(body)
	if err != nil {
		log.Error("parsing arXiv response failed", zap.Error(err))
		return types.SearchResponse{}, err
	}
	if len(entries) == 0 {
		log.Info("no papers found", zap.String("topic", topic))
		return types.SearchResponse{}, &NoResultsError{Topic: topic}
	}

	log.Info("found papers", zap.String("topic", topic), zap.Int("count", len(entries)))
	return types.SearchResponse{Entries: entries}, nil
}

// NormalizeQuery lower-cases topic and joins its words with "+". It rejects
// empty topics and any query that still contains a disallowed character.
func NormalizeQuery(topic string) (string, error) {
	query := strings.Join(strings.Fields(strings.ToLower(topic)), "+")
	if query == "" {
		return "", &InvalidQueryError{}
	}
	for _, ch := range disallowedChars {
		if strings.Contains(query, ch) {
			return "", &InvalidQueryError{Query: query, Char: ch}
		}
	}
	return query, nil
}

// buildArxivURL assembles the request URL. Each "+"-separated term is
// escaped on its own so the separator survives as a literal "+".
func buildArxivURL(endpoint, query string, maxResults int) string {
	terms := strings.Split(query, "+")
	for i, t := range terms {
		terms[i] = url.QueryEscape(t)
	}
	return fmt.Sprintf("%s?search_query=all:%s&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		endpoint, strings.Join(terms, "+"), maxResults)
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	XMLName xml.Name     `xml:"http://www.w3.org/2005/Atom feed"`
	Entries []arxivEntry `xml:"http://www.w3.org/2005/Atom entry"`
}

type arxivEntry struct {
	Title      string          `xml:"http://www.w3.org/2005/Atom title"`
	Summary    string          `xml:"http://www.w3.org/2005/Atom summary"`
	Authors    []arxivAuthor   `xml:"http://www.w3.org/2005/Atom author"`
	Categories []arxivCategory `xml:"http://www.w3.org/2005/Atom category"`
	Links      []arxivLink     `xml:"http://www.w3.org/2005/Atom link"`
}

type arxivAuthor struct {
	Name string `xml:"http://www.w3.org/2005/Atom name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// ParseFeed decodes an arXiv Atom feed into paper records, in feed order.
func ParseFeed(data []byte) ([]types.PaperRecord, error) {
	var feed arxivFeed
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		r := types.PaperRecord{
			Title:      strings.TrimSpace(entry.Title),
			Summary:    strings.TrimSpace(entry.Summary),
			Authors:    make([]string, 0, len(entry.Authors)),
			Categories: make([]string, 0, len(entry.Categories)),
		}
		for _, a := range entry.Authors {
			r.Authors = append(r.Authors, strings.TrimSpace(a.Name))
		}

		// Categories form a set; keep first occurrence order.
		seen := make(map[string]bool, len(entry.Categories))
		for _, c := range entry.Categories {
			if c.Term == "" || seen[c.Term] {
				continue
			}
			seen[c.Term] = true
			r.Categories = append(r.Categories, c.Term)
		}

		for _, l := range entry.Links {
			if l.Type == pdfMedia {
				r.PDF = l.Href
				break
			}
		}
		records = append(records, r)
	}
	return records, nil
}
