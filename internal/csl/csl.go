// Package csl models Citation Style Language JSON bibliographic records
// as returned by doi.org content negotiation.
package csl

import (
	"strconv"
	"strings"
)

// Name is one contributor on a record. Institutional authors often carry
// only Literal.
type Name struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

// Date holds CSL date-parts: [[year, month, day]] with trailing parts
// optional.
type Date struct {
	DateParts [][]int `json:"date-parts,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}

// Record is a CSL-JSON bibliographic record. Every field is optional and
// consumers must degrade gracefully when a key is absent.
type Record struct {
	Type           string `json:"type,omitempty"`
	Title          string `json:"title,omitempty"`
	Author         []Name `json:"author,omitempty"`
	ContainerTitle string `json:"container-title,omitempty"`
	Issued         *Date  `json:"issued,omitempty"`
	Volume         string `json:"volume,omitempty"`
	Issue          string `json:"issue,omitempty"`
	Page           string `json:"page,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	DOI            string `json:"DOI,omitempty"`
	URL            string `json:"URL,omitempty"`
}

// Year returns the publication year as a string, or "" when unknown.
func (r *Record) Year() string {
	if r == nil || r.Issued == nil || len(r.Issued.DateParts) == 0 || len(r.Issued.DateParts[0]) == 0 {
		return ""
	}
	return strconv.Itoa(r.Issued.DateParts[0][0])
}

// FirstAuthorFamily returns the family name of the first author,
// degrading to the literal name. Returns "" when there are no authors.
func (r *Record) FirstAuthorFamily() string {
	if r == nil || len(r.Author) == 0 {
		return ""
	}
	if r.Author[0].Family != "" {
		return r.Author[0].Family
	}
	return r.Author[0].Literal
}

// FormatAuthor renders one name as "Family, Given", falling back to
// whichever part is present.
func FormatAuthor(n Name) string {
	switch {
	case n.Family != "" && n.Given != "":
		return n.Family + ", " + n.Given
	case n.Family != "":
		return n.Family
	case n.Given != "":
		return n.Given
	default:
		return n.Literal
	}
}

// FormatAuthors renders all names joined by sep, skipping empty ones.
func FormatAuthors(names []Name, sep string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if s := FormatAuthor(n); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
