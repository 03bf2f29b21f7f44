package card

import "strings"

// Filter is the predicate set applied to the in-memory record set.
// Zero values mean "no constraint".
type Filter struct {
	Query        string // free text, matched case-insensitively across all fields
	Set          string
	Team         string
	League       string
	AutoOnly     bool
	NumberedOnly bool
	UnlistedOnly bool
}

// Match reports whether c passes every constraint in f.
func (f Filter) Match(c Card) bool {
	if f.Set != "" && !strings.EqualFold(c.Set, f.Set) {
		return false
	}
	if f.Team != "" && !strings.EqualFold(c.Team, f.Team) {
		return false
	}
	if f.League != "" && !strings.EqualFold(c.League, f.League) {
		return false
	}
	if f.AutoOnly && !c.Autograph {
		return false
	}
	if f.NumberedOnly && !IsNumbered(c.Features) {
		return false
	}
	if f.UnlistedOnly && c.Listed {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(c.searchText(), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

func (c Card) searchText() string {
	return strings.ToLower(strings.Join([]string{
		c.Name, c.Title, c.Player, c.Team, c.League, c.Sport, c.Season,
		c.Year, c.Set, c.Number, c.Brand, c.Condition, c.Features,
	}, "\n"))
}
