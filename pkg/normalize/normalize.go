// Package normalize provides the field normalization applied to every
// string compared by the similarity scorer and blocking index. Functions
// here are pure and allocation-light; they run many times per candidate
// pair.
package normalize

import (
	"strings"
	"unicode"
)

// Field returns the canonical comparison form of a raw field value:
// leading/trailing whitespace stripped, lower-cased, and internal
// whitespace runs collapsed to single spaces. Empty input normalizes to
// the empty string, never an error.
func Field(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// URL normalizes a URL for exact-equality blocking. URLs follow the same
// rules as any other field; no scheme or host canonicalization is
// attempted, so two URLs match only when their normalized text matches.
func URL(s string) string {
	return Field(s)
}

// Tags splits a comma-delimited tag string into normalized, de-blanked
// tags. Used for the STEM-field comparison in the distinguishing-feature
// detector.
func Tags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := Field(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
