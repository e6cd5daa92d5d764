package llm

import "strings"

// ReplacePlaceholders substitutes every "{key}" occurrence in s with the
// corresponding value from vars. Keys absent from vars are left as literal
// text, and substituted values are inserted verbatim (braces in values are
// not escaped). Each key is replaced in a single pass; substitution is not
// recursive.
func ReplacePlaceholders(s string, vars map[string]string) string {
	for key, value := range vars {
		s = strings.ReplaceAll(s, "{"+key+"}", value)
	}
	return s
}
