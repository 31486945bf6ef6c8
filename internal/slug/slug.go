// Package slug converts company names into directory-safe identifiers.
package slug

import "strings"

// Make converts a company name into a lowercase hyphen slug.
// - "&" becomes "and" so "Acme & Co" reads as "acme-and-co"
// - any run of characters outside [a-z0-9] collapses to a single hyphen
// - leading/trailing hyphens are trimmed
// If nothing survives the cleanup the slug is "company".
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "and")

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	result := b.String()
	if result == "" {
		return "company"
	}
	return result
}
