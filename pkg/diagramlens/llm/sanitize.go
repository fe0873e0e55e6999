package llm

import (
	"strings"
)

// StripFences removes a Markdown code fence wrapped around model output.
//
// Models often answer "return only the source" requests with
// "```mermaid\n...\n```". Text without a leading fence is returned trimmed.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	body := s[nl+1:]
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
