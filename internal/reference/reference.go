// Package reference defines the core domain types for resolved
// citations.
package reference

import "citefetch/internal/csl"

// Resolved is one cited work resolved from a citation edge. Only DOI is
// guaranteed: a failed metadata lookup leaves every other field empty
// but never drops the entry.
type Resolved struct {
	DOI     string      `json:"doi"`
	Title   string      `json:"title,omitempty"`
	Authors []string    `json:"authors,omitempty"`
	Year    string      `json:"year,omitempty"`
	CSL     *csl.Record `json:"csl,omitempty"`
}

// FromCSL builds a Resolved from the CSL record fetched for doi. A nil
// record yields a DOI-only entry.
func FromCSL(doi string, rec *csl.Record) Resolved {
	r := Resolved{DOI: doi, CSL: rec}
	if rec == nil {
		return r
	}
	r.Title = rec.Title
	r.Year = rec.Year()
	for _, a := range rec.Author {
		if s := csl.FormatAuthor(a); s != "" {
			r.Authors = append(r.Authors, s)
		}
	}
	return r
}
