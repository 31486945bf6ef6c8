package screenshot

import (
	"net/http"
	"strings"
)

// blockedStatus reports whether the document response means the site's WAF
// refused us outright.
func blockedStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// denyMarker scans the rendered page for bot-protection phrases and returns
// the first match, or "" when the page looks genuine. Matching is a plain
// case-insensitive substring test; block pages are short and formulaic.
func denyMarker(content string, markers []string) string {
	lowered := strings.ToLower(content)
	for _, m := range markers {
		if m == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(m)) {
			return m
		}
	}
	return ""
}
