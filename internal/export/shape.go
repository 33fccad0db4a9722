package export

import "strings"

const (
	maxTableKeyLength   = 50
	maxTableValueLength = 100
)

// tableRows decides whether section content reads as structured key/value
// data. It returns the parsed rows and true when at least two lines parse as
// short "key: value" pairs and those lines form the majority of the non-blank
// content.
func tableRows(content string) ([][2]string, bool) {
	var rows [][2]string
	nonBlank := 0

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		nonBlank++

		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		if len(key) >= maxTableKeyLength || len(value) >= maxTableValueLength {
			continue
		}
		rows = append(rows, [2]string{key, value})
	}

	if len(rows) < 2 || len(rows)*2 <= nonBlank {
		return nil, false
	}
	return rows, true
}

// cleanContent strips HTML tags and bold markers ahead of plain rendering.
func cleanContent(content string) string {
	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(b.String(), "**", ""))
}
