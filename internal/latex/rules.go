// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"regexp"
	"strings"
)

// Rule is one ordered substitution applied during sanitization.
type Rule struct {
	// Name identifies the rule in tests and diagnostics.
	Name string

	// Pattern selects the text to replace.
	Pattern *regexp.Regexp

	// Replacement is expanded with regexp.Expand semantics ($1, ${name}).
	Replacement string

	// SkipEscaped leaves a match untouched when the byte immediately before
	// it is a backslash, so "\\\section" (a line break followed by a
	// command) is not rewritten.
	SkipEscaped bool
}

// Apply returns s with every eligible match of the rule replaced.
func (r Rule) Apply(s string) string {
	matches := r.Pattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if r.SkipEscaped && start > 0 && s[start-1] == '\\' {
			continue
		}
		b.WriteString(s[last:start])
		b.Write(r.Pattern.ExpandString(nil, r.Replacement, s, m))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// controlWords are the commands whose doubled-backslash form is a known
// generation artifact. Grouped by purpose; order within the table is the
// order rules are applied.
var controlWords = []string{
	// document structure and preamble
	"documentclass", "usepackage", "title", "author", "date", "maketitle",
	"tableofcontents", "appendix",
	// sectioning
	"chapter", "section", "subsection", "subsubsection", "paragraph",
	// environments and lists
	"begin", "end", "item",
	// figures and tables
	"includegraphics", "caption", "centering", "hline", "toprule", "midrule",
	"bottomrule", "multicolumn",
	// math
	"frac", "sqrt", "sum", "prod", "int", "mathbf", "mathrm", "mathcal",
	"cdot", "times", "leq", "geq", "infty",
	// text formatting
	"textbf", "textit", "texttt", "emph", "underline", "footnote", "url", "href",
	// citations and references
	"cite", "citep", "citet", "ref", "eqref", "label", "bibliography",
	"bibliographystyle",
}

// ControlWordRules collapses "\\word" to "\word" for every known control
// word. The trailing word boundary keeps "\\sectionmark" and similar
// unknown commands untouched.
var ControlWordRules = buildControlWordRules(controlWords)

func buildControlWordRules(words []string) []Rule {
	rules := make([]Rule, 0, len(words))
	for _, w := range words {
		rules = append(rules, Rule{
			Name:        "unescape-" + w,
			Pattern:     regexp.MustCompile(`\\\\` + regexp.QuoteMeta(w) + `\b`),
			Replacement: `\` + w,
			SkipEscaped: true,
		})
	}
	return rules
}

// PunctuationRules replace typographic Unicode punctuation with the
// ASCII LaTeX equivalents. The em dash precedes the en dash only for
// readability; the two never overlap.
var PunctuationRules = []Rule{
	literal("left-double-quote", "“", "``"),
	literal("right-double-quote", "”", "''"),
	literal("left-single-quote", "‘", "`"),
	literal("right-single-quote", "’", "'"),
	literal("em-dash", "—", "---"),
	literal("en-dash", "–", "--"),
}

// LineLeadingRule collapses a doubled backslash at the start of a line,
// after optional indentation, when any character other than a backslash
// follows on the same line. A "\\" alone on its line is left alone.
var LineLeadingRule = Rule{
	Name:        "line-leading-backslash",
	Pattern:     regexp.MustCompile(`(?m)^([ \t]*)\\\\([^\\\n])`),
	Replacement: `${1}\${2}`,
}

func literal(name, from, to string) Rule {
	return Rule{
		Name:        name,
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(from)),
		Replacement: strings.ReplaceAll(to, "$", "$$"),
	}
}

// DefaultRules is the full ordered substitution table applied by Sanitize
// before the document envelope is checked.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, len(ControlWordRules)+len(PunctuationRules)+1)
	rules = append(rules, ControlWordRules...)
	rules = append(rules, PunctuationRules...)
	rules = append(rules, LineLeadingRule)
	return rules
}
