package card

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// The derivations below are deliberately approximate heuristics over
// messy free text. They are kept as small pure functions with the
// matching rules pinned by tests; ambiguity always degrades to an empty
// value, never an error.

const (
	// keyMaxLength bounds derived identity keys. Long enough that real
	// season+set+player+number+features combinations stay distinct.
	keyMaxLength = 80

	// titleFallback is used when every title component is empty.
	titleFallback = "Trading Card"
)

var (
	// A plausible card year: first 4-digit token starting 19 or 20.
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// Print-run fraction: a slash followed by 1-4 digits ("/99").
	serialPattern = regexp.MustCompile(`/(\d{1,4})`)

	// Whole-word autograph markers. "auto" as a word also matches the
	// leading stem of "Auto /25" style features; "Automobile" does not.
	autographPattern = regexp.MustCompile(`(?i)\b(?:auto|autograph|autographed|signed)\b`)

	// Serial-numbered markers for filtering: "/99", "5/99", or the
	// literal words.
	numberedPattern = regexp.MustCompile(`(?i)/\d+|\b\d+\s*/\s*\d+\b|\bnumbered\b|\bserial\b`)
)

// DeriveYear extracts the card year from the card name, falling back to
// the set name. First match wins, left to right; no range validation
// beyond the century prefix.
func DeriveYear(name, set string) string {
	if y := yearPattern.FindString(name); y != "" {
		return y
	}
	return yearPattern.FindString(set)
}

// DeriveSerial extracts the print-run size from a "/NN" fraction in the
// features text, falling back to the card name. Only the denominator is
// kept: source text rarely exposes the specific copy number, and the
// print run is what listings advertise. Returns "" when no fraction is
// present.
func DeriveSerial(features, name string) string {
	if m := serialPattern.FindStringSubmatch(features); m != nil {
		return m[1]
	}
	if m := serialPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

// DeriveAutograph reports whether the text carries a whole-word
// autograph marker.
func DeriveAutograph(text string) bool {
	return autographPattern.MatchString(text)
}

// IsNumbered reports whether the features text indicates a
// serial-numbered card. Used as a filter predicate, not stored.
func IsNumbered(features string) bool {
	return numberedPattern.MatchString(features)
}

// DeriveKey synthesizes a stable identity key from the fields that
// distinguish one listing from another. Identical
// season+set+player+number+features intentionally collapse to the same
// key; that collision is how "already listed" reconciliation works.
// The key is lowercase with apostrophes stripped, non-alphanumeric runs
// collapsed to single hyphens, and bounded length.
func DeriveKey(season, set, player, number, features string) string {
	base := strings.Join([]string{season, set, player, number, features}, " ")
	base = apostrophes.Replace(base)

	key := slug.Make(base)
	if len(key) > keyMaxLength {
		key = strings.Trim(key[:keyMaxLength], "-")
	}
	return key
}

var apostrophes = strings.NewReplacer("'", "", "’", "", "‘", "", `"`, "", "“", "", "”", "")

// DeriveTitle prefers an explicit title-like column verbatim, otherwise
// composes one from the card's identifying parts. Falls back to a fixed
// literal when everything is empty.
func DeriveTitle(explicit, year, set, player, features, number string) string {
	if explicit != "" {
		return explicit
	}

	var parts []string
	for _, p := range []string{year, set, player, features} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if number != "" {
		parts = append(parts, "#"+number)
	}
	if len(parts) == 0 {
		return titleFallback
	}
	return strings.Join(parts, " ")
}
