// Package repair extracts and parses JSON payloads from raw model output.
// Models return prose, code fences, or both around the JSON they were asked
// for; repair's job is to never let that block the pipeline.
package repair

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the most plausible JSON payload inside text.
//
// Order of preference: the inner text of the first triple-backtick fence
// (with or without a "json" tag), then the first top-level {...} span, then
// the trimmed original text.
func ExtractJSON(text string) string {
	if inner, ok := fencedBlock(text); ok {
		return strings.TrimSpace(inner)
	}
	if span, ok := braceSpan(text); ok {
		return span
	}
	return strings.TrimSpace(text)
}

// Parse extracts and unmarshals text into T. On any parse failure it
// returns the caller-supplied fallback and false; it never returns an
// error. The bool lets callers and tests distinguish a clean parse from a
// fallback substitution.
func Parse[T any](text string, fallback T) (T, bool) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &out); err != nil {
		return fallback, false
	}
	return out, true
}

func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]

	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	inner := strings.TrimSpace(rest[:end])

	// Strip an optional "json" language tag, whether it sits on its own
	// fence line or inline before the payload.
	if len(inner) >= 4 && strings.EqualFold(inner[:4], "json") {
		tail := inner[4:]
		if tail == "" || tail[0] == '\n' || tail[0] == '\r' || tail[0] == ' ' || tail[0] == '\t' {
			inner = strings.TrimSpace(tail)
		}
	}
	return inner, true
}

// braceSpan finds the first balanced top-level {...} span, tracking string
// literals so braces inside values don't break the balance count.
func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
