package styles

import "testing"

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{
			name:    "by id",
			term:    "ieee",
			wantIDs: []string{"ieee"},
		},
		{
			name:    "by name case insensitive",
			term:    "CHICAGO",
			wantIDs: []string{"chicago-author-date"},
		},
		{
			name:    "substring across ids",
			term:    "american-",
			wantIDs: []string{"american-chemical-society", "american-medical-association"},
		},
		{
			name:    "no match",
			term:    "zzzz",
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.term)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter(%q) returned %d styles, want %d", tt.term, len(got), len(tt.wantIDs))
			}
			for i, s := range got {
				if s.ID != tt.wantIDs[i] {
					t.Errorf("Filter(%q)[%d].ID = %q, want %q", tt.term, i, s.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterEmptyTermReturnsCatalog(t *testing.T) {
	got := Filter("")
	if len(got) != len(Catalog) {
		t.Errorf("Filter(\"\") returned %d styles, want %d", len(got), len(Catalog))
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Catalog {
		if seen[s.ID] {
			t.Errorf("duplicate style ID %q", s.ID)
		}
		seen[s.ID] = true
		if s.ID == "" || s.Name == "" {
			t.Errorf("style with empty ID or name: %+v", s)
		}
	}
}
