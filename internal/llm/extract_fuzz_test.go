package llm

import (
	"strings"
	"testing"
)

func FuzzExtractJSONCandidates(f *testing.F) {
	// Seed corpus with interesting inputs
	f.Add(`{"key": "value"}`)
	f.Add(``)
	f.Add(`no json here`)
	f.Add(`{"outer": {"inner": {"deep": 1}}}`)
	f.Add(`first {"a": 1} second {"b": 2}`)
	f.Add(`prefix {"a": 1} suffix {malformed`)
	f.Add(`{{{`)
	f.Add(`}}}`)
	f.Add(`{"text": "He said \"hello\""}`)
	f.Add(`{"text": "brace } in string"}`)
	f.Add(`{"path": "C:\\Users\\test"}`)
	f.Add(`{unterminated "string`)
	f.Add(`{ {"a": 1}`)
	f.Add("```json\n{\"key\": \"value\"}\n```")
	f.Add(strings.Repeat(`{"a":1}`, 50))
	f.Add(strings.Repeat("{", 200))

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("extractJSONCandidates panicked on input %q: %v", input, r)
			}
		}()

		for _, candidate := range extractJSONCandidates(input) {
			if len(candidate) == 0 || candidate[0] != '{' {
				t.Errorf("candidate %q does not start with '{' (input %q)", candidate, input)
			}
			if !strings.Contains(input, candidate) {
				t.Errorf("candidate %q is not a substring of input %q", candidate, input)
			}
		}
	})
}
