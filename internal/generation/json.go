package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
	fence      = "```"
)

// StripThinking removes <think>...</think> reasoning blocks emitted by some
// local models.
func StripThinking(text string) string {
	for {
		start := strings.Index(text, thinkOpen)
		if start == -1 {
			return text
		}
		end := strings.Index(text[start:], thinkClose)
		if end == -1 {
			return text
		}
		text = text[:start] + text[start+end+len(thinkClose):]
	}
}

// UnwrapFence returns the body of a response that is wrapped in a single
// fenced code block, dropping an optional language tag such as "json" or
// "html". Fences that open or close mid-text belong to the content and are
// left alone.
func UnwrapFence(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 2*len(fence) || !strings.HasPrefix(text, fence) || !strings.HasSuffix(text, fence) {
		return text
	}
	return fenceBody(text[len(fence) : len(text)-len(fence)])
}

// fenceBody drops the language tag line, which is a single word when present.
func fenceBody(body string) string {
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		tag := strings.TrimSpace(body[:nl])
		if tag == "" || !strings.ContainsAny(tag, " {[<\"") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body)
}

// embeddedFence returns the body of the first complete fenced block found
// anywhere in text.
func embeddedFence(text string) (string, bool) {
	start := strings.Index(text, fence)
	if start == -1 {
		return "", false
	}
	rest := text[start+len(fence):]
	end := strings.Index(rest, fence)
	if end == -1 {
		return "", false
	}
	return fenceBody(rest[:end]), true
}

func isDocument(s string) bool {
	return s != "" && (s[0] == '{' || s[0] == '[')
}

// ExtractJSON cleans a model response down to the JSON document it carries.
func ExtractJSON(text string) string {
	cleaned := strings.TrimSpace(StripThinking(text))
	if cleaned == "" || isDocument(cleaned) {
		return cleaned
	}
	if body := UnwrapFence(cleaned); isDocument(body) {
		return body
	}
	if body, ok := embeddedFence(cleaned); ok && isDocument(body) {
		return body
	}

	// Prose around the payload: keep the outermost object or array.
	objStart, objEnd := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}")
	arrStart, arrEnd := strings.Index(cleaned, "["), strings.LastIndex(cleaned, "]")
	switch {
	case objStart != -1 && objEnd > objStart && (arrStart == -1 || objStart < arrStart):
		return cleaned[objStart : objEnd+1]
	case arrStart != -1 && arrEnd > arrStart:
		return cleaned[arrStart : arrEnd+1]
	}
	return cleaned
}

// ParseJSON decodes the JSON document carried by model output. The response
// is decoded as-is first; fences and surrounding prose are only stripped when
// that fails, so string values may contain backticks.
func ParseJSON(text string) (any, error) {
	cleaned := strings.TrimSpace(StripThinking(text))
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}
	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		return v, nil
	}

	payload := ExtractJSON(cleaned)
	if payload == "" {
		return nil, fmt.Errorf("empty response")
	}
	v = nil
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}
	return v, nil
}
