package domain

import (
	"slices"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"pog", "poggers", 4},
		{"ピカチュウ", "ピカチュ", 1},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNearest(t *testing.T) {
	emotes := []Emote{
		{ID: "1", Name: "pogu"},
		{ID: "2", Name: "pog"},
		{ID: "3", Name: "pog"},
		{ID: "4", Name: "sadge"},
	}

	tests := []struct {
		name   string
		query  string
		wantID string
		wantOK bool
	}{
		{name: "exact match", query: "pog", wantID: "2", wantOK: true},
		{name: "closest match", query: "sadg", wantID: "4", wantOK: true},
		{name: "selector picks among ties", query: "pog~1", wantID: "3", wantOK: true},
		{name: "selector past the end clamps", query: "pog~9", wantID: "1", wantOK: true},
		{name: "too far", query: "monkaS", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Nearest(emotes, tt.query)
			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("expected emote %s, got %s (%s)", tt.wantID, got.ID, got.Name)
			}
		})
	}
}

func TestEmote_Reaction(t *testing.T) {
	e := Emote{ID: "9", Name: "catJAM", Animated: true}

	if got := e.Reaction(); got != "catJAM:9" {
		t.Errorf("expected catJAM:9, got %q", got)
	}
	if got := e.String(); got != "<a:catJAM:9>" {
		t.Errorf("expected animated markup, got %q", got)
	}
}

func TestParseQueries(t *testing.T) {
	got := ParseQueries("  pog   sadge\tcatJAM ")
	if want := []string{"pog", "sadge", "catJAM"}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
