package listing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/slabworks/lister/internal/card"
)

// Business defaults for generated rows. These are deliberately constants:
// the action is always an add, and the category and condition codes are
// the pre-approved defaults for raw (ungraded, near-mint-or-better)
// single cards. Changing them is a code change, never per-record logic.
const (
	actionAdd          = "Add"
	defaultCategoryID  = "261328" // sports trading card singles
	defaultConditionID = "275002" // ungraded, near mint or better

	// titleMaxLength is the marketplace's title limit.
	titleMaxLength = 80
)

// slot binds the target column names that may carry a semantic value to
// the function producing that value. Names are tried in order: exact
// case-insensitive match first across all of them, then a soft match
// that ignores a leading "*", anything from "(" on, and spacing; the
// template's action header, for example, appears as
// "*Action(SiteID=US|Country=US|Currency=USD|Version=1193)".
type slot struct {
	names []string
	value func(c card.Card) string
}

var slots = []slot{
	{[]string{"*Action", "Action"}, func(card.Card) string { return actionAdd }},
	{[]string{"*Category", "Category", "CategoryID"}, func(card.Card) string { return defaultCategoryID }},
	{[]string{"*Title", "Title"}, func(c card.Card) string { return TruncateTitle(c.Title) }},
	{[]string{"Custom label (SKU)", "CustomLabel"}, func(c card.Card) string { return c.Key }},
	{[]string{"PicURL", "Item photo URL", "Image URL"}, func(c card.Card) string { return c.ImageURL }},
	{[]string{"C:Player/Athlete", "C:Player", "Player"}, func(c card.Card) string { return c.Player }},
	{[]string{"C:Team", "Team"}, func(c card.Card) string { return c.Team }},
	{[]string{"C:League", "League"}, func(c card.Card) string { return c.League }},
	{[]string{"C:Parallel/Variety", "C:Parallel", "Parallel"}, func(c card.Card) string { return c.Features }},
	{[]string{"C:Card Number", "Card Number"}, func(c card.Card) string { return c.Number }},
	{[]string{"*ConditionID", "ConditionID"}, func(card.Card) string { return defaultConditionID }},
	{[]string{"C:Autographed", "Autographed"}, func(c card.Card) string { return yesNo(c.Autograph) }},
	{[]string{"C:Year Manufactured", "C:Year", "Year"}, func(c card.Card) string { return c.Year }},
	{[]string{"C:Season", "Season"}, func(c card.Card) string { return c.Season }},
	{[]string{"C:Manufacturer", "Manufacturer", "Brand"}, func(c card.Card) string { return c.Brand }},
	{[]string{"C:Set", "Set"}, func(c card.Card) string { return ShortSetName(c.Set) }},
	{[]string{"C:Card Name", "Card Name"}, func(c card.Card) string { return c.Name }},
	{[]string{"C:Sport", "Sport"}, func(c card.Card) string { return c.Sport }},
	{[]string{"*Description", "Description"}, Description},
}

// MapRow produces one output row for c, positionally aligned to header.
// Slots whose column is absent from the template are skipped silently;
// the row never grows past the header length.
func MapRow(c card.Card, header []string) []string {
	row := make([]string, len(header))
	for _, s := range slots {
		if i := resolveColumn(header, s.names); i >= 0 {
			row[i] = s.value(c)
		}
	}
	return row
}

// resolveColumn finds the header index for the first matching name,
// exact match preferred over soft match. Returns -1 when no column
// matches.
func resolveColumn(header []string, names []string) int {
	for _, n := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), n) {
				return i
			}
		}
	}
	for _, n := range names {
		fn := foldName(n)
		for i, h := range header {
			if foldName(h) == fn {
				return i
			}
		}
	}
	return -1
}

// foldName reduces a header name to a comparable core: lowercase, no
// leading "*", no parenthesized qualifier, no spaces.
func foldName(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.TrimPrefix(h, "*")
	if i := strings.IndexByte(h, '('); i >= 0 {
		h = h[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(h), " ", "")
}

// TruncateTitle enforces the marketplace title limit: titles longer than
// 80 characters are cut at 79 and a single ellipsis appended. Counting
// is rune-based so multi-byte text is never cut mid-character.
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= titleMaxLength {
		return title
	}
	runes := []rune(title)
	return strings.TrimRight(string(runes[:titleMaxLength-1]), " ") + "…"
}

var (
	leadingYear      = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	trailingLeagueRE = regexp.MustCompile(`^[A-Z]{2,5}$`)
)

// ShortSetName condenses a full set name for the template's short set
// column: strip a leading 4-digit year token and a single trailing
// all-caps league code, then keep at most the first two remaining words.
// Best-effort only; it may under- or over-trim unusual set names.
func ShortSetName(set string) string {
	words := strings.Fields(set)
	if len(words) > 0 && leadingYear.MatchString(words[0]) {
		words = words[1:]
	}
	if len(words) > 1 && trailingLeagueRE.MatchString(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
