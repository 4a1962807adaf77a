// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex repairs common artifacts in model-generated LaTeX before it
// is handed to the typesetting engine. Every function here is pure.
package latex

import (
	"regexp"
	"sort"
	"strings"
)

// Preamble is prepended to markup that has no document class.
const Preamble = `\documentclass{article}
\usepackage{amsmath}
\usepackage{graphicx}
\usepackage{hyperref}`

const (
	beginDocument = `\begin{document}`
	endDocument   = `\end{document}`
)

var (
	documentClassPattern = regexp.MustCompile(`\\documentclass\b`)
	beginDocumentPattern = regexp.MustCompile(`\\begin\s*\{document\}`)
	endDocumentPattern   = regexp.MustCompile(`\\end\s*\{document\}`)
	preambleLinePattern  = regexp.MustCompile(`(?m)^.*\\(documentclass|usepackage)\b.*$`)
)

// Sanitize applies DefaultRules and repairs the document markers until
// neither changes the text, then ensures the document envelope. The result
// has exactly one \begin{document} followed by exactly one \end{document},
// and Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(markup string) string {
	return EnsureEnvelope(settle(markup))
}

// settle alternates the rule table and marker repair until neither changes
// the text. Each change replaces a non-ASCII character or shortens the text.
func settle(s string) string {
	rules := DefaultRules()
	for {
		next := normalizeMarkers(ApplyRules(s, rules))
		if next == s {
			return s
		}
		s = next
	}
}

// ApplyRules applies rules to s in sequence.
func ApplyRules(s string, rules []Rule) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

// HasDocumentClass reports whether s declares a document class.
func HasDocumentClass(s string) bool {
	return documentClassPattern.MatchString(s)
}

// EnsureEnvelope makes s a minimal well-formed document. Document markers
// are first reduced to at most one \begin{document} and one later
// \end{document}. Without a document class the content is then wrapped in
// Preamble and a document body. With a document class, a missing
// \begin{document} is inserted after the last preamble line. A missing
// \end{document} is appended.
func EnsureEnvelope(s string) string {
	s = normalizeMarkers(s)
	hasBegin := beginDocumentPattern.MatchString(s)
	hasEnd := endDocumentPattern.MatchString(s)

	switch {
	case !HasDocumentClass(s) && !hasBegin:
		body := strings.Trim(s, "\n")
		return Preamble + "\n" + beginDocument + "\n" + body + "\n" + endDocument + "\n"
	case !HasDocumentClass(s):
		s = Preamble + "\n" + strings.TrimLeft(s, "\n")
	case !hasBegin:
		s = insertBegin(s)
	}
	if !hasEnd {
		s = appendLine(s, endDocument)
	}
	return s
}

// normalizeMarkers keeps the first \begin{document} and the last
// \end{document} after it, dropping every other marker. Without a begin
// marker every end marker is dropped.
func normalizeMarkers(s string) string {
	begins := beginDocumentPattern.FindAllStringIndex(s, -1)
	ends := endDocumentPattern.FindAllStringIndex(s, -1)

	keepEnd := -1
	if len(begins) > 0 {
		for i := len(ends) - 1; i >= 0; i-- {
			if ends[i][0] >= begins[0][1] {
				keepEnd = i
				break
			}
		}
	}

	var drop [][]int
	if len(begins) > 1 {
		drop = append(drop, begins[1:]...)
	}
	for i, loc := range ends {
		if i != keepEnd {
			drop = append(drop, loc)
		}
	}
	if len(drop) == 0 {
		return s
	}
	sort.Slice(drop, func(a, b int) bool { return drop[a][0] < drop[b][0] })

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range drop {
		b.WriteString(s[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// insertBegin places \begin{document} after the last \documentclass or
// \usepackage line.
func insertBegin(s string) string {
	locs := preambleLinePattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return appendLine(s, beginDocument)
	}
	at := locs[len(locs)-1][1]
	return s[:at] + "\n" + beginDocument + s[at:]
}

func appendLine(s, line string) string {
	return strings.TrimRight(s, "\n") + "\n" + line + "\n"
}
