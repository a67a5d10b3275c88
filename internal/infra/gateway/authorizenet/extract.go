package authorizenet

import "strings"

// Extract returns the text between the first <tag> and the first </tag> after it,
// or "" when either is missing.
func Extract(body, tag string) string {
	open := "<" + tag + ">"
	start := strings.Index(body, open)
	if start < 0 {
		return ""
	}
	start += len(open)
	end := strings.Index(body[start:], "</"+tag+">")
	if end < 0 {
		return ""
	}
	return body[start : start+end]
}
