// Package export provides pure conversions from CSL records to citation
// formats. Nothing here performs I/O.
package export

import (
	"fmt"
	"strings"

	"citefetch/internal/csl"
	"citefetch/internal/doi"
)

// MaxKeyLen caps the length of a generated BibTeX citation key.
const MaxKeyLen = 80

// bibtexTypes maps CSL item types to BibTeX entry types. Anything else
// becomes misc.
var bibtexTypes = map[string]string{
	"journal-article":     "article",
	"book":                "book",
	"book-chapter":        "incollection",
	"proceedings-article": "inproceedings",
	"report":              "techreport",
	"thesis":              "phdthesis",
}

// ToBibTeX converts a CSL record to a BibTeX entry. Every field is
// optional and a record with no metadata still yields a valid skeleton
// entry. rec must not be nil; that is the caller's responsibility.
func ToBibTeX(inputDOI string, rec *csl.Record) string {
	entryType := "misc"
	if t, ok := bibtexTypes[rec.Type]; ok {
		entryType = t
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, bibtexKey(inputDOI, rec)))

	writeField := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escapeBibTeX(value)))
	}

	writeField("title", rec.Title)
	writeField("author", csl.FormatAuthors(rec.Author, " and "))
	writeField("journal", rec.ContainerTitle)
	writeField("year", rec.Year())
	writeField("volume", rec.Volume)
	writeField("number", rec.Issue)
	writeField("pages", rec.Page)
	writeField("publisher", rec.Publisher)
	d := rec.DOI
	if d == "" {
		d = inputDOI
	}
	writeField("doi", d)
	writeField("url", rec.URL)

	b.WriteString("}\n")
	return b.String()
}

// bibtexKey derives a citation key: first author's surname, publication
// year when known, and the sanitized DOI, joined by underscores and
// capped at MaxKeyLen. Falls back to the sanitized DOI, then the literal
// "ref", when the composed key comes out empty.
func bibtexKey(inputDOI string, rec *csl.Record) string {
	surname := alnumOnly(rec.FirstAuthorFamily())
	if surname == "" {
		surname = "ref"
	}

	parts := []string{surname}
	if y := rec.Year(); y != "" {
		parts = append(parts, y)
	}
	sanitized := doi.Sanitize(inputDOI)
	if sanitized != "" {
		parts = append(parts, sanitized)
	}

	key := strings.Join(parts, "_")
	if len(key) > MaxKeyLen {
		key = key[:MaxKeyLen]
	}
	if key == "" {
		if sanitized != "" {
			return sanitized
		}
		return "ref"
	}
	return key
}

// escapeBibTeX doubles backslashes, escapes braces, and collapses
// embedded newlines to single spaces.
var bibtexEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

func escapeBibTeX(s string) string {
	return bibtexEscaper.Replace(s)
}

// alnumOnly strips everything but ASCII letters and digits.
func alnumOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
