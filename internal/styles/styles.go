// Package styles carries the static catalog of citation styles offered
// for remote style-rendered output.
package styles

import "strings"

// Style identifies a CSL citation style.
type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog lists the styles offered by default. IDs match the CSL style
// repository names used by the doi.org bibliography renderer.
var Catalog = []Style{
	{ID: "apa", Name: "American Psychological Association 7th edition"},
	{ID: "american-chemical-society", Name: "American Chemical Society"},
	{ID: "american-medical-association", Name: "American Medical Association 11th edition"},
	{ID: "bmj", Name: "BMJ"},
	{ID: "cell", Name: "Cell"},
	{ID: "chicago-author-date", Name: "Chicago Manual of Style 17th edition (author-date)"},
	{ID: "council-of-science-editors", Name: "Council of Science Editors, Citation-Sequence"},
	{ID: "elsevier-harvard", Name: "Elsevier - Harvard (with titles)"},
	{ID: "harvard-cite-them-right", Name: "Cite Them Right 10th edition - Harvard"},
	{ID: "ieee", Name: "IEEE"},
	{ID: "modern-language-association", Name: "Modern Language Association 9th edition"},
	{ID: "nature", Name: "Nature"},
	{ID: "plos", Name: "PLOS"},
	{ID: "springer-basic-author-date", Name: "Springer - Basic (author-date)"},
	{ID: "vancouver", Name: "Vancouver"},
}

// Filter returns the styles whose ID or display name contains term,
// case-insensitively. An empty term returns the whole catalog.
func Filter(term string) []Style {
	if term == "" {
		return Catalog
	}
	term = strings.ToLower(term)

	var matches []Style
	for _, s := range Catalog {
		if strings.Contains(strings.ToLower(s.ID), term) ||
			strings.Contains(strings.ToLower(s.Name), term) {
			matches = append(matches, s)
		}
	}
	return matches
}
