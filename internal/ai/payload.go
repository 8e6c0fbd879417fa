package ai

import (
	"encoding/json"
	"strings"
)

// Payload is model output that either parsed as JSON or stayed raw text.
// Exactly one field is set.
type Payload struct {
	Parsed json.RawMessage
	Raw    string
}

func (p Payload) IsParsed() bool {
	return p.Parsed != nil
}

// MarshalJSON renders {"data": ...} for parsed output and {"raw": "..."}
// otherwise.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.IsParsed() {
		return json.Marshal(struct {
			Data json.RawMessage `json:"data"`
		}{p.Parsed})
	}
	return json.Marshal(struct {
		Raw string `json:"raw"`
	}{p.Raw})
}

// ParsePayload accepts bare JSON, JSON inside a markdown fence, or JSON
// surrounded by prose.
func ParsePayload(text string) Payload {
	if js, ok := ExtractJSON(text); ok {
		return Payload{Parsed: json.RawMessage(js)}
	}
	return Payload{Raw: text}
}

// ExtractJSON finds the JSON document in model output.
func ExtractJSON(text string) (string, bool) {
	s := strings.TrimSpace(text)
	s = stripFence(s)
	if json.Valid([]byte(s)) {
		return s, true
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return "", false
	}
	candidate := s[start : end+1]
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}
	return "", false
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
