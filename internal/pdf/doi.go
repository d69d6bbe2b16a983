// Package pdf extracts DOIs from local PDF files so a paper on disk can
// be resolved without typing its identifier.
package pdf

import (
	"regexp"
	"strings"

	"citefetch/internal/doi"
	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// maxScanPages bounds the search; the DOI is almost always on the first
// page.
const maxScanPages = 3

// ExtractDOI extracts a DOI from a PDF file. Returns "" (not an error)
// when no DOI is found.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxScanPages {
		pages = maxScanPages
	}

	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if d := findDOI(text); d != "" {
			return d, nil
		}
	}
	return "", nil
}

// findDOI returns the first valid DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if doi.IsValid(match) {
			return match
		}
	}
	return ""
}
