package llm

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestExtractJSONCandidates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain object",
			in:   `{"key": "value"}`,
			want: []string{`{"key": "value"}`},
		},
		{
			name: "object with surrounding text",
			in:   `Here is the JSON: {"key": "value"} end`,
			want: []string{`{"key": "value"}`},
		},
		{
			name: "nested object is one candidate",
			in:   `{"outer": {"inner": "value"}}`,
			want: []string{`{"outer": {"inner": "value"}}`},
		},
		{
			name: "two independent objects",
			in:   `first {"a": 1} second {"b": 2}`,
			want: []string{`{"a": 1}`, `{"b": 2}`},
		},
		{
			name: "braces inside strings ignored",
			in:   `{"text": "a } b { c"}`,
			want: []string{`{"text": "a } b { c"}`},
		},
		{
			name: "escaped quotes inside strings",
			in:   `{"text": "He said \"hello\""}`,
			want: []string{`{"text": "He said \"hello\""}`},
		},
		{
			name: "unterminated span returned as candidate",
			in:   `prefix {"a": 1} suffix {malformed`,
			want: []string{`{"a": 1}`, `{malformed`},
		},
		{
			name: "object recovered behind unbalanced opener",
			in:   `{ {"a": 1}`,
			want: []string{`{ {"a": 1}`, `{"a": 1}`},
		},
		{
			name: "no braces",
			in:   "just some text",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONCandidates(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractJSONCandidates(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Any valid JSON object embedded verbatim in surrounding text must come back
// as a parseable candidate.
func TestExtractJSONCandidates_RecoversEmbeddedObjects(t *testing.T) {
	objects := []string{
		`{"a": 1}`,
		`{"entities": [{"name": "Ada", "type": "person"}]}`,
		`{"text": "with {braces} and \"quotes\" inside"}`,
		`{}`,
	}
	surroundings := []struct{ prefix, suffix string }{
		{"", ""},
		{"The model said: ", "."},
		{"start { unbalanced ", " end"},
		{"noise ", " trailing {cut"},
	}

	for _, obj := range objects {
		for _, s := range surroundings {
			text := s.prefix + obj + s.suffix

			var recovered bool
			for _, candidate := range extractJSONCandidates(text) {
				var parsed map[string]interface{}
				if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
					recovered = true
					break
				}
			}
			if !recovered {
				t.Errorf("no parseable candidate recovered from %q", text)
			}
		}
	}
}

func TestMatchingBrace(t *testing.T) {
	in := `x {"a": {"b": 1}} y`
	end := matchingBrace(in, 2)
	if end < 0 || in[2:end] != `{"a": {"b": 1}}` {
		t.Errorf("matchingBrace span = %q", in[2:max(end, 2)])
	}

	if got := matchingBrace("{never closed", 0); got != -1 {
		t.Errorf("matchingBrace on unterminated span = %d, want -1", got)
	}

	// Closing brace hidden inside an unterminated string does not count.
	if got := matchingBrace(`{"a": "}`, 0); got != -1 {
		t.Errorf("matchingBrace with brace inside string = %d, want -1", got)
	}
}

func TestSnippet(t *testing.T) {
	short := "short"
	if snippet(short) != short {
		t.Errorf("snippet(%q) = %q", short, snippet(short))
	}

	long := strings.Repeat("x", 500)
	got := snippet(long)
	if len(got) != 123 || !strings.HasSuffix(got, "...") {
		t.Errorf("snippet of long string = %d bytes, want 123 with ellipsis", len(got))
	}
}
