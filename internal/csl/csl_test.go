package csl

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalRecord(t *testing.T) {
	data := `{
		"type": "journal-article",
		"title": "The earth is round (p < .05)",
		"author": [{"family": "Cohen", "given": "Jacob"}],
		"container-title": "American Psychologist",
		"issued": {"date-parts": [[1994, 12]]},
		"volume": "49",
		"issue": "12",
		"page": "997-1003",
		"publisher": "APA",
		"DOI": "10.1037/0003-066x.49.12.997",
		"URL": "https://doi.org/10.1037/0003-066x.49.12.997"
	}`

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if rec.Title != "The earth is round (p < .05)" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Year() != "1994" {
		t.Errorf("Year() = %q, want 1994", rec.Year())
	}
	if rec.FirstAuthorFamily() != "Cohen" {
		t.Errorf("FirstAuthorFamily() = %q, want Cohen", rec.FirstAuthorFamily())
	}
	if rec.ContainerTitle != "American Psychologist" {
		t.Errorf("ContainerTitle = %q", rec.ContainerTitle)
	}
}

func TestYear_MissingParts(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
	}{
		{"nil record", nil},
		{"no issued", &Record{}},
		{"empty date-parts", &Record{Issued: &Date{}}},
		{"empty inner", &Record{Issued: &Date{DateParts: [][]int{{}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Year(); got != "" {
				t.Errorf("Year() = %q, want empty", got)
			}
		})
	}
}

func TestFormatAuthor(t *testing.T) {
	tests := []struct {
		name Name
		want string
	}{
		{Name{Family: "Smith", Given: "John"}, "Smith, John"},
		{Name{Family: "Smith"}, "Smith"},
		{Name{Given: "John"}, "John"},
		{Name{Literal: "The ENCODE Project Consortium"}, "The ENCODE Project Consortium"},
		{Name{}, ""},
	}

	for _, tt := range tests {
		if got := FormatAuthor(tt.name); got != tt.want {
			t.Errorf("FormatAuthor(%+v) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatAuthors(t *testing.T) {
	names := []Name{
		{Family: "Smith", Given: "John"},
		{},
		{Family: "Doe", Given: "Jane"},
	}
	got := FormatAuthors(names, " and ")
	want := "Smith, John and Doe, Jane"
	if got != want {
		t.Errorf("FormatAuthors() = %q, want %q", got, want)
	}
}

func TestFirstAuthorFamily_LiteralFallback(t *testing.T) {
	rec := &Record{Author: []Name{{Literal: "UNESCO"}}}
	if got := rec.FirstAuthorFamily(); got != "UNESCO" {
		t.Errorf("FirstAuthorFamily() = %q, want UNESCO", got)
	}
}
