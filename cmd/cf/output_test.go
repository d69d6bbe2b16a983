package main

import (
	"reflect"
	"testing"

	"citefetch/internal/doiorg"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer string", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestFirstN(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		n     int
		want  []string
	}{
		{"under limit", []string{"a", "b"}, 3, []string{"a", "b"}},
		{"at limit", []string{"a", "b", "c"}, 3, []string{"a", "b", "c"}},
		{"over limit", []string{"a", "b", "c", "d"}, 2, []string{"a", "b", "et al."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstN(tt.items, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("firstN() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMimeFor(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"bibtex", doiorg.MIMEBibTeX},
		{"ris", doiorg.MIMERIS},
		{"application/vnd.citationstyles.csl+json", "application/vnd.citationstyles.csl+json"},
	}
	for _, tt := range tests {
		if got := mimeFor(tt.format); got != tt.want {
			t.Errorf("mimeFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
