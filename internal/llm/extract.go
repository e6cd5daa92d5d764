package llm

import "strings"

// extractJSONCandidates scans text for balanced-brace spans that look like
// JSON objects and returns them left to right. Nested objects inside a
// balanced span are part of that span, not separate candidates.
//
// A span whose opening brace is never closed is still returned (it covers the
// rest of the text) so the caller can report it, and scanning then resumes at
// the next opening brace to recover objects nested behind the unbalanced one.
func extractJSONCandidates(text string) []string {
	var candidates []string

	i := 0
	for {
		rel := strings.IndexByte(text[i:], '{')
		if rel < 0 {
			break
		}
		start := i + rel

		end := matchingBrace(text, start)
		if end < 0 {
			candidates = append(candidates, text[start:])
			i = start + 1
			continue
		}

		candidates = append(candidates, text[start:end])
		i = end
	}

	return candidates
}

// matchingBrace returns the index just past the brace that closes the span
// opened at start, or -1 if the span never closes. Braces inside JSON strings
// are ignored, including escaped quotes within them.
func matchingBrace(text string, start int) int {
	depth := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		// Handle string escaping
		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}

		// Track if we're inside a string
		if char == '"' {
			inString = !inString
			continue
		}

		// Only count braces outside of strings
		if !inString {
			switch char {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	}

	return -1
}
