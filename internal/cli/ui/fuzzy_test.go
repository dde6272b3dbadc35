package ui

import (
	"slices"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"Book", "Bok", 1},
		{"Shelf", "Self", 1},
		{"größe", "grösse", 2},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"Book", "Box", "Shelf", "Library", "Bookmark"}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"exact", "Shelf", []string{"Shelf"}},
		{"closest first", "Bok", []string{"Book", "Box"}},
		{"case insensitive", "book", []string{"Book", "Box"}},
		{"no match", "Association", []string{}},
		{"ordered by distance", "Bo", []string{"Box", "Book"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilar(tt.target, candidates)
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindSimilar(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
