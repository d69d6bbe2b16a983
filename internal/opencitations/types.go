// Package opencitations provides a client for the OpenCitations COCI
// references API.
package opencitations

// CitationEdge is one citing-to-cited relationship as returned by the
// API. Identifier bundles are space-separated prefixed IDs, e.g.
// "omid:br/0612058700 doi:10.1037/0003-066x.48.6.621 openalex:W1234".
// Edges are received verbatim and never modified.
type CitationEdge struct {
	OCI       string `json:"oci"`
	Citing    string `json:"citing"`
	Cited     string `json:"cited"`
	Creation  string `json:"creation"`
	Timespan  string `json:"timespan"`
	JournalSC string `json:"journal_sc"`
	AuthorSC  string `json:"author_sc"`
}
