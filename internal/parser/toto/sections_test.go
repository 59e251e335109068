package toto

import (
	"reflect"
	"testing"
)

func TestExtractSections(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "no sentinel, no capture",
			lines: []string{"Formule 1 2024", "Race Winner"},
			want:  nil,
		},
		{
			name: "captures tabs after sentinel",
			lines: []string{
				"header noise",
				"Alles",
				"Formule 1 2024",
				"Grand Prix van Nederland - Race",
				"Qualification",
			},
			want: []string{"Formule 1 2024", "Qualification"},
		},
		{
			name: "sentinel is case-insensitive",
			lines: []string{
				"alles",
				"Formula 1 2025",
			},
			want: []string{"Formula 1 2025"},
		},
		{
			name: "hyphen range stops capture once enough tabs exist",
			lines: []string{
				"Alles",
				"Formule 1 2024",
				"Qualification",
				"Sprint",
				"0,10 - 0,20",
				"Race",
			},
			want: []string{"Formule 1 2024", "Qualification", "Sprint"},
		},
		{
			name: "non-matching line stops capture after three tabs",
			lines: []string{
				"Alles",
				"Formule 1 2024",
				"Qualification",
				"Sprint",
				"Verstappen, Max",
				"Race",
			},
			want: []string{"Formule 1 2024", "Qualification", "Sprint"},
		},
		{
			name: "market title ends capture",
			lines: []string{
				"Alles",
				"Formula 1 2024",
				"Race Winner",
				"Verstappen, Max",
			},
			want: []string{"Formula 1 2024"},
		},
		{
			name: "duplicates are not re-appended",
			lines: []string{
				"Alles",
				"Qualification",
				"Qualification",
			},
			want: []string{"Qualification"},
		},
	}
	for _, tt := range tests {
		if got := ExtractSections(tt.lines); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: ExtractSections = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMatchSectionForMarket(t *testing.T) {
	sections := []string{"Formule 1 2024", "Grand Prix Qualification", "Something else"}
	tests := []struct {
		title string
		want  string
	}{
		{"Race Winner", "Grand Prix Qualification"},
		{"Kwalificatie Winnaar", "Grand Prix Qualification"},
		{"Sprint Shootout Winner", "Grand Prix Qualification"},
		{"Winning Constructor", "Formule 1 2024"},
		{"Championship Winner", "Formule 1 2024"},
	}
	for _, tt := range tests {
		if got := MatchSectionForMarket(tt.title, sections); got != tt.want {
			t.Errorf("MatchSectionForMarket(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	if got := MatchSectionForMarket("Winning Constructor", []string{"Random tab"}); got != "" {
		t.Errorf("expected no association, got %q", got)
	}
}
