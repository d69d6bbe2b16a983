// Package doi provides DOI normalization and validation helpers.
package doi

import "strings"

// Normalize strips a leading "doi:" prefix and common URL forms from a
// DOI and trims surrounding whitespace. The same normalization is
// applied everywhere a DOI is used as an API path segment or lookup key.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://doi.org/")
	s = strings.TrimPrefix(s, "http://doi.org/")
	s = strings.TrimPrefix(s, "doi.org/")
	if len(s) >= 4 && strings.EqualFold(s[:4], "doi:") {
		s = s[4:]
	}
	return strings.TrimSpace(s)
}

// Sanitize replaces every non-alphanumeric character with an underscore,
// producing a token safe for citation keys and filenames.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// IsValid performs basic structural validation on a DOI.
func IsValid(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
