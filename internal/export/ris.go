package export

import (
	"strings"

	"citefetch/internal/csl"
)

// risTypes maps CSL item types to RIS reference types. Anything else
// becomes JOUR.
var risTypes = map[string]string{
	"book":                "BOOK",
	"book-chapter":        "CHAP",
	"proceedings-article": "CPAPER",
}

// ToRIS converts a CSL record to an RIS entry. Author lines repeat once
// per author in record order; every tag besides TY and ER is omitted
// when its value is absent. rec must not be nil.
func ToRIS(rec *csl.Record) string {
	refType := "JOUR"
	if t, ok := risTypes[rec.Type]; ok {
		refType = t
	}

	var b strings.Builder
	tag := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(name + "  - " + value + "\n")
	}

	b.WriteString("TY  - " + refType + "\n")
	for _, a := range rec.Author {
		tag("AU", csl.FormatAuthor(a))
	}
	tag("TI", rec.Title)
	tag("JO", rec.ContainerTitle)
	tag("PY", rec.Year())
	tag("VL", rec.Volume)
	tag("IS", rec.Issue)
	tag("SP", rec.Page)
	tag("DO", rec.DOI)
	tag("UR", rec.URL)
	b.WriteString("ER  - \n")
	return b.String()
}
