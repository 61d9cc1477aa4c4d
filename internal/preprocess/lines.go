// Package preprocess turns raw PSL text into numbered statement lines.
package preprocess

import "strings"

// Line is one statement line of a source file.
type Line struct {
	Text     string // trimmed statement text
	Original string // line as written, comments removed
	Number   int    // 1-based
}

// Lines strips block comments, splits text into lines and drops blank and
// line-comment lines. An unterminated block comment consumes the rest of the
// input.
func Lines(text string) []Line {
	stripped := stripBlockComments(text)
	var out []Line
	for i, raw := range strings.Split(stripped, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, Line{Text: trimmed, Original: strings.TrimRight(raw, "\r"), Number: i + 1})
	}
	return out
}

// stripBlockComments removes /* ... */ without nesting. Newlines inside a
// comment survive so line numbers stay put.
func stripBlockComments(text string) string {
	if !strings.Contains(text, "/*") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		rest := text[start+2:]
		end := strings.Index(rest, "*/")
		if end < 0 {
			b.WriteString(strings.Repeat("\n", strings.Count(rest, "\n")))
			break
		}
		b.WriteString(strings.Repeat("\n", strings.Count(rest[:end], "\n")))
		text = rest[end+2:]
	}
	return b.String()
}
