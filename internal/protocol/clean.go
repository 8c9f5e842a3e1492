package protocol

import (
	"encoding/json"
	"strings"
)

const fence = "```"

// StripCodeFences removes a leading ``` / ```json line and a trailing ```
// from model output. Text without fences is only trimmed.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, fence) {
		s = strings.TrimPrefix(s, fence)
		// language tag on the opening fence, e.g. ```json
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "{[") {
				s = s[nl+1:]
			}
		} else {
			s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the outermost {...} block of text when that block
// is valid JSON.
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}
