// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlWordRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"section", `\\section{Intro}`, `\section{Intro}`},
		{"starred section", `\\section*{Intro}`, `\section*{Intro}`},
		{"begin and end", `x \\begin{itemize} \\item a \\end{itemize}`, `x \begin{itemize} \item a \end{itemize}`},
		{"consecutive", `\\textbf{a}\\textit{b}`, `\textbf{a}\textit{b}`},
		{"citation", `see \\cite{vaswani2017}`, `see \cite{vaswani2017}`},
		{"math", `$\\frac{1}{2}$`, `$\frac{1}{2}$`},
		{"line break untouched", `first line \\ second line`, `first line \\ second line`},
		{"line break with spacing untouched", `row \\[2mm] next`, `row \\[2mm] next`},
		{"unknown word untouched", `\\sectionmark{x}`, `\\sectionmark{x}`},
		{"unlisted command untouched", `\\foo`, `\\foo`},
		{"line break then command untouched", `a\\\section{b}`, `a\\\section{b}`},
		{"single backslash untouched", `\section{b}`, `\section{b}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyRules(tt.in, ControlWordRules))
		})
	}
}

func TestPunctuationRules(t *testing.T) {
	in := "“Quoted” and ‘single’ from 1990–2000 — done"
	want := "``Quoted'' and `single' from 1990--2000 --- done"
	assert.Equal(t, want, ApplyRules(in, PunctuationRules))
}

func TestLineLeadingRule(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"start of text", `\\foo{x}`, `\foo{x}`},
		{"start of later line", "a\n\\\\bar", "a\n\\bar"},
		{"indented", "a\n  \\\\baz", "a\n  \\baz"},
		{"mid-line untouched", `a \\qux`, `a \\qux`},
		{"bare line break untouched", "a\n\\\\\nb", "a\n\\\\\nb"},
		{"line break at end of text untouched", "a\n\\\\", "a\n\\\\"},
		{"spacing argument", "\\\\[3pt]", "\\[3pt]"},
		{"bracket at line start", "a\n\\\\[2mm]", "a\n\\[2mm]"},
		{"digit", "a\n\\\\1 x", "a\n\\1 x"},
		{"parenthesis", "a\n\\\\(x)", "a\n\\(x)"},
		{"brace", "a\n\\\\{b}", "a\n\\{b}"},
		{"space", "a\n\\\\ b", "a\n\\ b"},
		{"triple backslash untouched", `\\\foo`, `\\\foo`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineLeadingRule.Apply(tt.in))
		})
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, len(ControlWordRules)+len(PunctuationRules)+1)
	assert.Equal(t, "unescape-documentclass", rules[0].Name)
	assert.Equal(t, LineLeadingRule.Name, rules[len(rules)-1].Name)

	seen := make(map[string]bool)
	for _, r := range rules {
		assert.False(t, seen[r.Name], "duplicate rule %s", r.Name)
		seen[r.Name] = true
	}
}

func TestEnsureEnvelope_WrapsBareContent(t *testing.T) {
	got := EnsureEnvelope("Hello \\textbf{world}.\n")

	assert.True(t, strings.HasPrefix(got, Preamble))
	assert.Contains(t, got, "\\begin{document}\nHello \\textbf{world}.\n\\end{document}\n")
	assertBalanced(t, got)
}

func TestEnsureEnvelope_BodyWithoutClass(t *testing.T) {
	in := "\\begin{document}\nBody\n"
	got := EnsureEnvelope(in)

	assert.True(t, strings.HasPrefix(got, Preamble+"\n\\begin{document}"))
	assertBalanced(t, got)
}

func TestEnsureEnvelope_StrayEndWithoutClass(t *testing.T) {
	got := EnsureEnvelope("Body\n\\end{document}")
	assertBalanced(t, got)
	assert.Contains(t, got, "\\begin{document}\nBody\n\\end{document}")
}

func TestEnsureEnvelope_ClassWithoutBody(t *testing.T) {
	in := "\\documentclass{article}\n\\usepackage{amsmath}\n\\title{T}\nText here\n"
	got := EnsureEnvelope(in)

	want := "\\documentclass{article}\n\\usepackage{amsmath}\n\\begin{document}\n\\title{T}\nText here\n\\end{document}\n"
	assert.Equal(t, want, got)
}

func TestEnsureEnvelope_ClassWithBeginOnly(t *testing.T) {
	in := "\\documentclass{article}\n\\begin{document}\nText"
	got := EnsureEnvelope(in)
	assert.Equal(t, in+"\n\\end{document}\n", got)
}

func TestEnsureEnvelope_CompleteDocumentUnchanged(t *testing.T) {
	in := "\\documentclass{article}\n\\begin{document}\nText\n\\end{document}\n"
	assert.Equal(t, in, EnsureEnvelope(in))
}

func TestSanitize_RepairsGeneratedDocument(t *testing.T) {
	in := `\\documentclass{article}
\\usepackage{graphicx}
\\begin{document}
\\section{Results — “preliminary”}
Accuracy rose 3–5\% \\cite{smith2024}.\\
\\textbf{Note}
\\end{document}`

	got := Sanitize(in)

	assert.Contains(t, got, "\\documentclass{article}\n\\usepackage{graphicx}\n\\begin{document}")
	assert.Contains(t, got, "\\section{Results --- ``preliminary''}")
	assert.Contains(t, got, "3--5\\% \\cite{smith2024}.\\\\\n\\textbf{Note}")
	assert.NotContains(t, got, Preamble)
	assertBalanced(t, got)
}

func TestSanitize_AlwaysProducesEnvelope(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"\\section{Only a section}",
		"\\\\section{escaped section}\n\\\\item x",
		"\\begin{document}",
		"\\end{document}",
		"“quoted”",
	}
	for _, in := range inputs {
		got := Sanitize(in)
		assert.True(t, HasDocumentClass(got), "input %q", in)
		assertBalanced(t, got)
	}
}

func TestSanitize_MarkersInOrder(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"end before begin", "x\n\\end{document}\n\\begin{document}\ny"},
		{"end before begin with class", "\\documentclass{article}\n\\end{document}\n\\begin{document}\ny"},
		{"duplicate markers", "\\begin{document}\na\n\\begin{document}\nb\n\\end{document}\n\\end{document}"},
		{"escaped markers", "\\\\begin{document}\nbody\n\\\\end{document}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			assertBalanced(t, got)
			assert.Equal(t, got, Sanitize(got))
		})
	}
}

func TestSanitize_EndBeforeBeginKeepsContent(t *testing.T) {
	got := Sanitize("x\n\\end{document}\n\\begin{document}\ny")
	assert.Equal(t, Preamble+"\nx\n\n\\begin{document}\ny\n\\end{document}\n", got)
}

func TestSanitize_MarkerRemovalExposesControlWord(t *testing.T) {
	in := `\\\end{document}documentclass{article}item`
	once := Sanitize(in)
	assert.True(t, strings.HasPrefix(once, "\\documentclass{article}item\n\\begin{document}"), once)
	assert.Equal(t, once, Sanitize(once))

	in = `\\\end{document}section{A}`
	once = Sanitize(in)
	assert.Contains(t, once, "\\section{A}")
	assert.NotContains(t, once, `\\section`)
	assert.Equal(t, once, Sanitize(once))
}

// sanitizeTokens are fragments that interact with the rule table and the
// marker repair when concatenated.
var sanitizeTokens = []string{
	`\`, `\\`, "\n", " ", "\t", "x", "1", "[2mm]", "{", "}", "(",
	"section", "item", "end", "begin", "documentclass{article}", "usepackage{amsmath}",
	"{document}", "begin{document}", "end{document}",
	`\begin{document}`, `\end{document}`, `\\begin{document}`, `\\end{document}`,
	"“", "”", "—", "–", "’",
}

func TestSanitize_RandomInputsIdempotentAndBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		var b strings.Builder
		for n := rng.Intn(14); n > 0; n-- {
			b.WriteString(sanitizeTokens[rng.Intn(len(sanitizeTokens))])
		}
		in := b.String()

		once := Sanitize(in)
		require.Equal(t, once, Sanitize(once), "input %q", in)
		require.True(t, HasDocumentClass(once), "input %q", in)

		begins := beginDocumentPattern.FindAllStringIndex(once, -1)
		ends := endDocumentPattern.FindAllStringIndex(once, -1)
		require.Len(t, begins, 1, "input %q output %q", in, once)
		require.Len(t, ends, 1, "input %q output %q", in, once)
		require.Less(t, begins[0][0], ends[0][0], "input %q output %q", in, once)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"\\documentclass{article}\n\\begin{document}\n\\\\section{A}\n“q” a–b\n\\end{document}\n",
		"\\\\documentclass{report}\n\\\\usepackage{amsmath}\n\\\\begin{document}\nx \\\\ y\n\\\\end{document}",
		"\\documentclass{article}\nNo body markers",
		"bare content with a line break \\\\ and \\\\\\section{x}",
		"\\begin{document}\nbody only",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func assertBalanced(t *testing.T, s string) {
	t.Helper()
	assert.Equal(t, 1, strings.Count(s, "\\begin{document}"), "begin markers in %q", s)
	assert.Equal(t, 1, strings.Count(s, "\\end{document}"), "end markers in %q", s)
	assert.Less(t, strings.Index(s, "\\begin{document}"), strings.Index(s, "\\end{document}"))
}
