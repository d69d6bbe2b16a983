// Package bundle packages formatted citations for download, either as a
// single text blob or a zip archive with one entry per reference.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"
	"strings"
	"unicode"

	"citefetch/internal/doi"
	"citefetch/internal/reference"
)

// titleSlugWords is how many title words go into an archive entry name.
const titleSlugWords = 3

// extensions maps output formats to file extensions. Style-rendered and
// unknown formats default to .txt.
var extensions = map[string]string{
	"bibtex": ".bib",
	"ris":    ".ris",
}

// Ext returns the file extension for a format.
func Ext(format string) string {
	if e, ok := extensions[format]; ok {
		return e
	}
	return ".txt"
}

// ConvertFunc renders one reference as citation text.
type ConvertFunc func(reference.Resolved) (string, error)

// SingleFile concatenates citations with blank-line separators. The
// filename derives from the root paper title, or the sanitized root DOI
// when no title is known.
func SingleFile(rootTitle, rootDOI, format string, citations []string) (string, []byte) {
	return FileName(rootTitle, rootDOI, Ext(format)), []byte(strings.Join(citations, "\n\n"))
}

// FileName derives the download name {slug}_references{ext} from the
// root paper title or, absent one, the sanitized root DOI.
func FileName(rootTitle, rootDOI, ext string) string {
	base := titlePrefix(rootTitle)
	if base == "" {
		base = doi.Sanitize(rootDOI)
	}
	return base + "_references" + ext
}

// Archive builds a zip with one entry per reference and reports how
// many entries made it in. A reference whose conversion fails is logged
// and skipped rather than aborting the whole archive.
func Archive(refs []reference.Resolved, format string, convert ConvertFunc) ([]byte, int, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	written := 0

	for _, ref := range refs {
		text, err := convert(ref)
		if err != nil {
			log.Printf("skipping %s: %v", ref.DOI, err)
			continue
		}
		w, err := zw.Create(EntryName(ref, format))
		if err != nil {
			return nil, 0, fmt.Errorf("creating archive entry: %w", err)
		}
		if _, err := w.Write([]byte(text)); err != nil {
			return nil, 0, fmt.Errorf("writing archive entry: %w", err)
		}
		written++
	}

	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), written, nil
}

// EntryName derives the archive filename for one reference from its
// first author's surname, year, and a short title slug, falling back to
// the sanitized DOI when all three are absent. The result contains only
// [a-z0-9_-] with no runs of underscores.
func EntryName(ref reference.Resolved, format string) string {
	var parts []string
	if len(ref.Authors) > 0 {
		surname := ref.Authors[0]
		if i := strings.Index(surname, ","); i >= 0 {
			surname = surname[:i]
		}
		parts = append(parts, surname)
	}
	if ref.Year != "" {
		parts = append(parts, ref.Year)
	}
	if ref.Title != "" {
		parts = append(parts, titleSlug(ref.Title, titleSlugWords))
	}

	base := strings.Join(parts, "_")
	if base == "" {
		base = doi.Sanitize(ref.DOI)
	}
	return sanitizeName(base) + Ext(format)
}

// titlePrefix takes the first 30 characters of a title with
// non-alphanumerics collapsed to underscores.
func titlePrefix(title string) string {
	runes := []rune(title)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return doi.Sanitize(string(runes))
}

// titleSlug returns the first n words of title, lowercased, with
// non-alphanumerics trimmed off each word.
func titleSlug(title string, n int) string {
	words := strings.Fields(strings.ToLower(title))
	if len(words) > n {
		words = words[:n]
	}
	for i, w := range words {
		words[i] = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	}
	return strings.Join(words, "_")
}

// sanitizeName maps a name onto [a-z0-9_-], collapsing any run of other
// characters into one underscore and trimming underscores at the edges.
func sanitizeName(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
			pendingUnderscore = false
		} else if !pendingUnderscore {
			b.WriteByte('_')
			pendingUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "ref"
	}
	return out
}
