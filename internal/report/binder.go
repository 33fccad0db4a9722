package report

import (
	"strings"

	"github.com/jonathan/docwriter/internal/record"
)

// Bind substitutes {key} tokens in content with values from the field map.
// The scan is a single left-to-right pass: substituted values are never
// re-scanned, so a value containing "{other}" cannot trigger recursive
// substitution. Tokens without a field map entry are left verbatim, which
// makes Bind idempotent for already-bound content.
func Bind(content string, fields record.FieldMap) string {
	if !strings.Contains(content, "{") {
		return content
	}

	var out strings.Builder
	out.Grow(len(content))

	for i := 0; i < len(content); {
		open := strings.IndexByte(content[i:], '{')
		if open < 0 {
			out.WriteString(content[i:])
			break
		}
		open += i
		out.WriteString(content[i:open])

		close := strings.IndexByte(content[open:], '}')
		if close < 0 {
			out.WriteString(content[open:])
			break
		}
		close += open

		key := content[open+1 : close]
		if value, ok := fields[key]; ok && isPlaceholderKey(key) {
			out.WriteString(value)
		} else {
			out.WriteString(content[open : close+1])
		}
		i = close + 1
	}

	return out.String()
}

// isPlaceholderKey reports whether s looks like a placeholder name rather
// than literal braced prose (placeholder names carry no spaces or braces).
func isPlaceholderKey(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, " \t\n{")
}
