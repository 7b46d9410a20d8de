// ABOUTME: Document key normalization from path-like identifiers
// ABOUTME: Produces the canonical key used for every lookup and comparison
package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize canonicalizes a raw identifier such as a talk URL.
// It keeps the text after the last '/', turns underscores into spaces,
// drops newlines and upper-cases the result. Normalize is total and idempotent.
func Normalize(raw string) string {
	if i := strings.LastIndexByte(raw, '/'); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.ReplaceAll(raw, "_", " ")
	raw = strings.ReplaceAll(raw, "\n", "")
	return strings.ToUpper(raw)
}

// DisplayName title-cases a canonical key for presentation
func DisplayName(key string) string {
	return cases.Title(language.English).String(key)
}
