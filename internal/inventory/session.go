package inventory

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/slabworks/lister/internal/card"
	"github.com/slabworks/lister/internal/listing"
)

// Session holds one application session's state: the normalized record
// set and the parsed listing template. Reload is the single writer and
// replaces the record set wholesale; readers always see a fully formed
// snapshot. Nothing mutates a Card after normalization except the
// Listed mark applied during reconciliation, before the set is
// published.
type Session struct {
	inventoryPath string
	templatePath  string
	headerRow     int

	mu       sync.RWMutex
	cards    []card.Card
	template *listing.Template
	loadedAt time.Time
}

// Facets are the distinct filterable values in the current record set,
// sorted, for populating filter dropdowns.
type Facets struct {
	Sets    []string `json:"sets"`
	Teams   []string `json:"teams"`
	Leagues []string `json:"leagues"`
}

// NewSession creates a session bound to its source files. templatePath
// may be empty, in which case exports run against an empty template and
// no reconciliation happens.
func NewSession(inventoryPath, templatePath string, headerRow int) *Session {
	return &Session{
		inventoryPath: inventoryPath,
		templatePath:  templatePath,
		headerRow:     headerRow,
		template:      &listing.Template{},
	}
}

// Reload reads both source files and replaces the session state. An
// unreadable inventory is the one failure surfaced to the caller; a
// missing template degrades to an empty one.
func (s *Session) Reload() error {
	cards, err := LoadCards(s.inventoryPath)
	if err != nil {
		return fmt.Errorf("inventory load: %w", err)
	}

	tpl := &listing.Template{}
	if s.templatePath != "" {
		tpl, err = LoadTemplate(s.templatePath, s.headerRow)
		if err != nil {
			return fmt.Errorf("template load: %w", err)
		}
	}

	listed := reconcile(cards, tpl)

	s.mu.Lock()
	s.cards = cards
	s.template = tpl
	s.loadedAt = time.Now()
	s.mu.Unlock()

	slog.Info("session reloaded",
		"cards", len(cards),
		"already_listed", listed,
		"template_columns", len(tpl.Header),
		"template_rows", len(tpl.Rows),
	)
	return nil
}

// reconcile marks cards whose identity key matches a key derived from a
// pre-existing template row. Keys are a documented heuristic: identical
// season+set+player+number+features are treated as the same listing.
// Rows exported by this tool carry the key verbatim in the SKU column;
// rows authored elsewhere are matched through the same normalizer, with
// a short-set variant tried as well because the template's set column
// holds the condensed set name.
func reconcile(cards []card.Card, tpl *listing.Template) int {
	keys := make(map[string]struct{})
	for _, rec := range tpl.Records() {
		if k := card.Normalize(rec).Key; k != "" {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return 0
	}

	listed := 0
	for i := range cards {
		c := &cards[i]
		_, ok := keys[c.Key]
		if !ok {
			short := card.DeriveKey(c.Season, listing.ShortSetName(c.Set), c.Player, c.Number, c.Features)
			_, ok = keys[short]
		}
		if ok {
			c.Listed = true
			listed++
		}
	}
	return listed
}

// Cards returns a snapshot copy of the record set.
func (s *Session) Cards() []card.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]card.Card(nil), s.cards...)
}

// Filter returns the cards matching f, in load order.
func (s *Session) Filter(f card.Filter) []card.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []card.Card
	for _, c := range s.cards {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the card with the given identity key.
func (s *Session) Find(key string) (card.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cards {
		if c.Key == key {
			return c, true
		}
	}
	return card.Card{}, false
}

// Facets returns the distinct sets, teams, and leagues in the record
// set.
func (s *Session) Facets() Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sets := make(map[string]struct{})
	teams := make(map[string]struct{})
	leagues := make(map[string]struct{})
	for _, c := range s.cards {
		if c.Set != "" {
			sets[c.Set] = struct{}{}
		}
		if c.Team != "" {
			teams[c.Team] = struct{}{}
		}
		if c.League != "" {
			leagues[c.League] = struct{}{}
		}
	}

	return Facets{
		Sets:    sortedKeys(sets),
		Teams:   sortedKeys(teams),
		Leagues: sortedKeys(leagues),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Export maps the selected cards into the template's schema and returns
// the serialized CSV (original template rows plus the appended rows)
// and the number of rows appended. Keys that match nothing are skipped,
// mirroring the mapper's schema tolerance. An empty key list exports
// the cards matching f instead.
func (s *Session) Export(keys []string, f card.Filter) (string, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var selected []card.Card
	if len(keys) > 0 {
		byKey := make(map[string]card.Card, len(s.cards))
		for _, c := range s.cards {
			byKey[c.Key] = c
		}
		for _, k := range keys {
			if c, ok := byKey[k]; ok {
				selected = append(selected, c)
			}
		}
	} else {
		for _, c := range s.cards {
			if f.Match(c) {
				selected = append(selected, c)
			}
		}
	}

	out := s.template.Clone()
	for _, c := range selected {
		out.Append(listing.MapRow(c, out.Header))
	}
	return out.Serialize(), len(selected)
}

// LoadedAt reports when the record set was last rebuilt.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
