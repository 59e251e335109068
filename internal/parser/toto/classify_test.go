package toto

import (
	"strings"
	"testing"

	"github.com/Vodeneev/totobet/internal/pkg/models"
)

func TestIsMarketTitle(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Race Winner", true},
		{"Winnaar Kwalificatie", true},
		{"Top 3 Classified", true},
		{"Winning Constructor", true},
		{"Any Driver Nationality of the Winner", true},
		{"Number of Classified Cars", true},
		{"Winning Margin", true},
		// selections and noise
		{"Verstappen, Max", false},
		{"0.10 - 0.20 Seconds", false},
		{"1,50", false},
		{"", false},
		// over-length titles are rejected
		{strings.Repeat("race ", 30), false},
	}
	for _, tt := range tests {
		if got := IsMarketTitle(tt.line); got != tt.want {
			t.Errorf("IsMarketTitle(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestGuessEntityType(t *testing.T) {
	tests := []struct {
		selection string
		want      string
	}{
		{"Verstappen, Max", models.EntityTypeDriver},
		{"Pérez, Sergio", models.EntityTypeDriver},
		{"Oracle Red Bull Racing", models.EntityTypeTeam},
		{"McLaren", models.EntityTypeTeam},
		{"Mercedes-AMG Petronas", models.EntityTypeTeam},
		{"Scuderia Ferrari", models.EntityTypeTeam},
		{"Safety Car", ""},
	}
	for _, tt := range tests {
		if got := GuessEntityType(tt.selection); got != tt.want {
			t.Errorf("GuessEntityType(%q) = %q, want %q", tt.selection, got, tt.want)
		}
	}
}
