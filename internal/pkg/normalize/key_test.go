package normalize

import "testing"

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Verstappen, Max", "verstappen max"},
		{"Pérez, Sergio", "perez sergio"},
		{"Perez, Sergio", "perez sergio"},
		{"  Oracle   Red Bull  Racing ", "oracle red bull racing"},
		{"Hülkenberg, Nico", "hulkenberg nico"},
		{"O'Ward, Pato", "oward pato"},
		{"Sainz Jr., Carlos", "sainz jr carlos"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalKey(tt.in); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalKeyIdempotent(t *testing.T) {
	for _, s := range []string{"Pérez, Sergio", "Verstappen, Max", "McLaren F1 Team", "çñü"} {
		once := CanonicalKey(s)
		if twice := CanonicalKey(once); twice != once {
			t.Errorf("CanonicalKey not idempotent for %q: %q -> %q", s, once, twice)
		}
	}
}

func TestCanonicalKeyAccentInsensitive(t *testing.T) {
	if CanonicalKey("Pérez") != CanonicalKey("Perez") {
		t.Errorf("CanonicalKey(Pérez)=%q, CanonicalKey(Perez)=%q; want equal",
			CanonicalKey("Pérez"), CanonicalKey("Perez"))
	}
}

func TestWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a  b ", "a b"},
		{"a  b", "a b"},
		{"a\tb", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Whitespace(tt.in); got != tt.want {
			t.Errorf("Whitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
