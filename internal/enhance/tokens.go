package enhance

import "strings"

// placeholderTokens returns the distinct {key} tokens found in s, in order
// of first appearance. Braced text containing spaces or nested braces is
// not a token.
func placeholderTokens(s string) []string {
	var tokens []string
	seen := make(map[string]bool)

	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			break
		}
		key := s[i+1 : i+1+end]
		if key != "" && !strings.ContainsAny(key, " {}\t\n") {
			token := "{" + key + "}"
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
		i += end + 1
	}
	return tokens
}

// missingTokens returns the tokens present in before but absent from after.
func missingTokens(before, after string) []string {
	var missing []string
	for _, token := range placeholderTokens(before) {
		if !strings.Contains(after, token) {
			missing = append(missing, token)
		}
	}
	return missing
}
