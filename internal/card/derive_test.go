package card

import (
	"strings"
	"testing"
)

// ============================================================================
// Derivation Heuristic Tests
// ============================================================================

func TestDeriveYear(t *testing.T) {
	tests := []struct {
		name  string
		cardN string
		set   string
		want  string
	}{
		{"year in card name", "2024 Topps Finest", "", "2024"},
		{"falls back to set", "Ronaldo FC", "2023 Topps Chrome", "2023"},
		{"name wins over set", "2021 Prizm", "2019 Select", "2021"},
		{"first match left to right", "2019 reprint of 1986 Fleer", "", "2019"},
		{"no year-like token", "Rookie Card", "Base Set", ""},
		{"century prefix required", "Card 1887", "Card 3024", ""},
		{"embedded digits do not match", "SKU12023A", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveYear(tt.cardN, tt.set); got != tt.want {
				t.Errorf("DeriveYear(%q, %q) = %q, want %q", tt.cardN, tt.set, got, tt.want)
			}
		})
	}
}

func TestDeriveSerial(t *testing.T) {
	tests := []struct {
		name     string
		features string
		cardN    string
		want     string
	}{
		{"print run in features", "Aqua Refractor /99", "", "99"},
		{"no space before slash", "Gold/10", "", "10"},
		{"copy and run keeps denominator after slash", "05/25", "", "25"},
		{"falls back to card name", "Base", "Auto /25 Ronaldo", "25"},
		{"no pattern", "Base", "Rookie Card", ""},
		{"at most four digits", "/12345", "", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSerial(tt.features, tt.cardN); got != tt.want {
				t.Errorf("DeriveSerial(%q, %q) = %q, want %q", tt.features, tt.cardN, got, tt.want)
			}
		})
	}
}

func TestDeriveAutograph(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"On-Card Auto", true},
		{"Autograph Parallel", true},
		{"Signed in blue ink", true},
		{"AUTO /25", true},
		{"Automobile Parallel", false},
		{"Autosport insert", false},
		{"Base", false},
	}

	for _, tt := range tests {
		if got := DeriveAutograph(tt.text); got != tt.want {
			t.Errorf("DeriveAutograph(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsNumbered(t *testing.T) {
	tests := []struct {
		features string
		want     bool
	}{
		{"Aqua Refractor /99", true},
		{"05/25", true},
		{"Serial numbered parallel", true},
		{"Numbered to 150", true},
		{"Base", false},
		{"Refractor", false},
	}

	for _, tt := range tests {
		if got := IsNumbered(tt.features); got != tt.want {
			t.Errorf("IsNumbered(%q) = %v, want %v", tt.features, got, tt.want)
		}
	}
}

func TestDeriveKey(t *testing.T) {
	got := DeriveKey("2023-2024", "2023 Topps Chrome", "C. Ronaldo", "10", "Auto /25")

	want := "2023-2024-2023-topps-chrome-c-ronaldo-10-auto-25"
	if got != want {
		t.Errorf("DeriveKey = %q, want %q", got, want)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey("2023-2024", "Topps Chrome", "C. Ronaldo", "10", "Auto /25")
	b := DeriveKey("2023-2024", "Topps Chrome", "C. Ronaldo", "10", "Auto /25")

	if a != b {
		t.Errorf("identical inputs produced different keys: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("key should be non-empty when components are present")
	}
}

func TestDeriveKey_StripsApostrophes(t *testing.T) {
	got := DeriveKey("2023", "Topps", "Shaquille O'Neal", "32", "")

	if strings.Contains(got, "o-neal") {
		t.Errorf("apostrophe should be stripped, not hyphenated: %q", got)
	}
	if !strings.Contains(got, "oneal") {
		t.Errorf("key = %q, want it to contain %q", got, "oneal")
	}
}

func TestDeriveKey_BoundedLength(t *testing.T) {
	long := strings.Repeat("Superfractor Refractor ", 20)
	got := DeriveKey("2023-2024", long, "C. Ronaldo", "10", long)

	if len(got) > keyMaxLength {
		t.Errorf("key length = %d, want <= %d", len(got), keyMaxLength)
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Errorf("key has dangling hyphen: %q", got)
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		year     string
		set      string
		player   string
		features string
		number   string
		want     string
	}{
		{
			name:     "explicit title verbatim",
			explicit: "Ronaldo FC",
			year:     "2023",
			set:      "2023 Topps Chrome",
			want:     "Ronaldo FC",
		},
		{
			name:     "composed from parts",
			year:     "2023",
			set:      "Topps Chrome",
			player:   "C. Ronaldo",
			features: "Refractor",
			number:   "10",
			want:     "2023 Topps Chrome C. Ronaldo Refractor #10",
		},
		{
			name:   "skips empty parts",
			set:    "Topps Chrome",
			number: "10",
			want:   "Topps Chrome #10",
		},
		{
			name: "fallback literal",
			want: titleFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTitle(tt.explicit, tt.year, tt.set, tt.player, tt.features, tt.number)
			if got != tt.want {
				t.Errorf("DeriveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
