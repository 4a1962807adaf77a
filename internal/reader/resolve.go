// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Base URLs for identifier resolution.
const (
	arxivPDFBase = "https://arxiv.org/pdf/"
	doiBase      = "https://doi.org/"
)

// arxivPattern matches arXiv IDs: "2301.07041", "arXiv:2301.07041", "2301.07041v2".
var arxivPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// doiPattern matches DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// ResolveURL turns an arXiv ID, DOI, or http(s) URL into the URL to fetch.
// DOIs go through the doi.org resolver, which the HTTP client follows.
func ResolveURL(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return arxivPDFBase + m[1], nil
	}
	if doiPattern.MatchString(identifier) {
		return doiBase + identifier, nil
	}
	if u, err := url.Parse(identifier); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return identifier, nil
	}
	return "", fmt.Errorf("unrecognized document identifier %q: expected an arXiv ID, DOI, or http(s) URL", identifier)
}
