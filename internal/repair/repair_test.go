package repair

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "fenced with json tag",
			text: "```json {\"a\":1} ```",
			want: `{"a":1}`,
		},
		{
			name: "fenced with json tag on its own line",
			text: "Here you go:\n```json\n{\"a\": 1}\n```\nLet me know!",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without tag",
			text: "```\n{\"b\": 2}\n```",
			want: `{"b": 2}`,
		},
		{
			name: "bare object with surrounding prose",
			text: "Sure! The campaign: {\"name\": \"x\", \"nested\": {\"y\": 1}} Hope that helps.",
			want: `{"name": "x", "nested": {"y": 1}}`,
		},
		{
			name: "braces inside string values",
			text: `prefix {"msg": "use {curly} braces"} suffix`,
			want: `{"msg": "use {curly} braces"}`,
		},
		{
			name: "no json at all returns trimmed original",
			text: "  just some prose  ",
			want: "just some prose",
		},
		{
			name: "unclosed fence falls through to brace span",
			text: "```json\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.text)
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestParse_Clean(t *testing.T) {
	fallback := sample{Name: "fallback", Items: []string{"a"}}

	got, ok := Parse(`{"name": "real", "items": ["x", "y"]}`, fallback)
	if !ok {
		t.Fatal("expected clean parse")
	}
	if got.Name != "real" || len(got.Items) != 2 {
		t.Errorf("unexpected parse result: %+v", got)
	}
}

func TestParse_MalformedReturnsFallbackUnchanged(t *testing.T) {
	fallback := sample{Name: "fallback", Items: []string{"a", "b"}}

	got, ok := Parse("definitely not json {{{", fallback)
	if ok {
		t.Fatal("expected fallback, got clean parse")
	}
	if got.Name != "fallback" || len(got.Items) != 2 || got.Items[0] != "a" {
		t.Errorf("fallback was not returned unchanged: %+v", got)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	fallback := sample{Name: "fallback"}

	got, ok := Parse("", fallback)
	if ok {
		t.Fatal("expected fallback for empty input")
	}
	if got.Name != "fallback" {
		t.Errorf("got %+v, want fallback", got)
	}
}

func TestParse_FencedPayload(t *testing.T) {
	got, ok := Parse("```json\n{\"name\": \"fenced\", \"items\": []}\n```", sample{})
	if !ok {
		t.Fatal("expected clean parse of fenced payload")
	}
	if got.Name != "fenced" {
		t.Errorf("got name %q, want fenced", got.Name)
	}
}
