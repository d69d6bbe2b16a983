package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"citefetch/internal/reference"
)

var entryNamePattern = regexp.MustCompile(`^[a-z0-9_-]+\.[a-z]+$`)

func TestEntryName(t *testing.T) {
	tests := []struct {
		name string
		ref  reference.Resolved
		want string
	}{
		{
			name: "author year title",
			ref: reference.Resolved{
				DOI:     "10.1037/0003-066x.48.6.621",
				Title:   "The earth is round (p < .05)",
				Authors: []string{"Cohen, Jacob"},
				Year:    "1994",
			},
			want: "cohen_1994_the_earth_is.bib",
		},
		{
			name: "doi fallback",
			ref:  reference.Resolved{DOI: "10.1037/0003-066x.48.6.621"},
			want: "10_1037_0003_066x_48_6_621.bib",
		},
		{
			name: "year only",
			ref:  reference.Resolved{DOI: "10.1/x", Year: "2001"},
			want: "2001.bib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryName(tt.ref, "bibtex"); got != tt.want {
				t.Errorf("EntryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntryName_SanitizedCharset(t *testing.T) {
	refs := []reference.Resolved{
		{DOI: "10.1/x", Title: "Étude de cas — l'analyse?!", Authors: []string{"Müller, Jürgen"}, Year: "2020"},
		{DOI: "10.1/y", Title: "   ", Authors: []string{"!!!, ???"}},
		{DOI: "", Title: "", Authors: nil},
		{DOI: "10.1/z", Title: "日本語のタイトル", Authors: []string{"山田, 太郎"}, Year: "1999"},
	}

	for _, ref := range refs {
		got := EntryName(ref, "ris")
		if !entryNamePattern.MatchString(got) {
			t.Errorf("EntryName(%+v) = %q, contains characters outside [a-z0-9_-]", ref, got)
		}
		if strings.Contains(got, "__") {
			t.Errorf("EntryName(%+v) = %q, contains consecutive underscores", ref, got)
		}
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"bibtex", ".bib"},
		{"ris", ".ris"},
		{"apa", ".txt"},
		{"", ".txt"},
	}
	for _, tt := range tests {
		if got := Ext(tt.format); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestSingleFile(t *testing.T) {
	name, data := SingleFile("The Earth Is Round: A Retrospective Review", "10.1/x", "bibtex",
		[]string{"@misc{a,\n}", "@misc{b,\n}"})

	if name != "The_Earth_Is_Round__A_Retrospe_references.bib" {
		t.Errorf("name = %q", name)
	}
	if string(data) != "@misc{a,\n}\n\n@misc{b,\n}" {
		t.Errorf("data = %q", data)
	}
}

func TestSingleFile_NoTitleFallsBackToDOI(t *testing.T) {
	name, _ := SingleFile("", "10.1073/pnas.1118373109", "ris", nil)
	if name != "10_1073_pnas_1118373109_references.ris" {
		t.Errorf("name = %q", name)
	}
}

func TestArchive(t *testing.T) {
	refs := []reference.Resolved{
		{DOI: "10.1/a", Title: "First Paper Title Words", Authors: []string{"Smith, John"}, Year: "1990"},
		{DOI: "10.1/b"},
	}

	data, written, err := Archive(refs, "ris", func(ref reference.Resolved) (string, error) {
		return "TY  - JOUR\nER  - \n", nil
	})
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive has %d entries, want 2", len(zr.File))
	}

	wantNames := []string{"smith_1990_first_paper_title.ris", "10_1_b.ris"}
	for i, f := range zr.File {
		if f.Name != wantNames[i] {
			t.Errorf("entry[%d] = %q, want %q", i, f.Name, wantNames[i])
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening entry: %v", err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		if string(content) != "TY  - JOUR\nER  - \n" {
			t.Errorf("entry[%d] content = %q", i, content)
		}
	}
}

func TestArchive_SkipsFailedConversions(t *testing.T) {
	refs := []reference.Resolved{
		{DOI: "10.1/good"},
		{DOI: "10.1/bad"},
		{DOI: "10.1/also-good"},
	}

	data, written, err := Archive(refs, "bibtex", func(ref reference.Resolved) (string, error) {
		if ref.DOI == "10.1/bad" {
			return "", errors.New("conversion failed")
		}
		return "@misc{ref,\n}\n", nil
	})
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("archive has %d entries, want 2 (failed entry skipped)", len(zr.File))
	}
}
