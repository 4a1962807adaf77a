// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "fmt"

// InvalidQueryError reports a topic that cannot be turned into an arXiv
// query. It is raised before any network call is made.
type InvalidQueryError struct {
	// Query is the normalized query that was rejected.
	Query string
	// Char is the offending character, or empty for an empty topic.
	Char string
}

func (e *InvalidQueryError) Error() string {
	if e.Char == "" {
		return "invalid query: topic is empty"
	}
	return fmt.Sprintf("invalid query: cannot have character %q in query: %s", e.Char, e.Query)
}

// SearchServiceError reports a non-success HTTP status from the arXiv API.
type SearchServiceError struct {
	StatusCode int
	Body       string
}

func (e *SearchServiceError) Error() string {
	return fmt.Sprintf("arXiv API request failed with status code %d\n%s", e.StatusCode, e.Body)
}

// NoResultsError reports a well-formed query whose feed carried no entries.
type NoResultsError struct {
	Topic string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no papers found for topic: %s", e.Topic)
}
