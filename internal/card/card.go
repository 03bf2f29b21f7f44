// Package card normalizes decoded inventory records into the canonical
// card entity the rest of the application works with.
//
// Inventory exports come from hand-maintained spreadsheets, so the
// normalizer resolves each semantic field through an ordered alias table
// (header names drift between export variants) and derives the computed
// attributes (year, print-run serial, autograph flag, identity key,
// display title) once, at normalization time. Records are never mutated
// afterwards.
package card

import (
	"sort"
	"strings"

	"github.com/slabworks/lister/internal/tabular"
)

// Card is one normalized inventory record. All fields are fixed at
// normalization time; Listed is the only field set later, by template
// reconciliation.
type Card struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Player    string `json:"player"`
	Team      string `json:"team"`
	League    string `json:"league"`
	Sport     string `json:"sport"`
	Season    string `json:"season"`
	Year      string `json:"year"`
	Set       string `json:"set"`
	Number    string `json:"number"`
	Brand     string `json:"brand"`
	Condition string `json:"condition"`
	Features  string `json:"features"`
	ImageURL  string `json:"image_url"`
	Autograph bool   `json:"autograph"`
	Serial    string `json:"serial,omitempty"`
	Listed    bool   `json:"listed"`
}

// fieldAliases lists, per canonical field, the source header names that
// may carry it, in preference order. Matching is case-insensitive and
// the first alias present with a non-empty value wins. The lists cover
// the inventory export variants seen in the wild plus the listing
// template's own "C:" item-specific headers, so template rows can be
// pushed through the same normalizer for reconciliation.
var fieldAliases = map[string][]string{
	"name":      {"Card Name", "C:Card Name", "Name", "Card"},
	"title":     {"Listing Title", "Title", "*Title", "Card Name", "C:Card Name"},
	"player":    {"Player", "C:Player/Athlete", "C:Player", "Player Name", "Athlete"},
	"team":      {"Team", "C:Team", "Club"},
	"league":    {"League", "C:League", "Competition"},
	"sport":     {"Sport", "C:Sport"},
	"season":    {"Season", "C:Season", "Year/Season"},
	"set":       {"Card Set", "C:Set", "Set", "Product"},
	"number":    {"Card Number", "C:Card Number", "Card #", "Number", "No."},
	"brand":     {"Brand", "C:Manufacturer", "Manufacturer", "Maker"},
	"condition": {"Condition", "Cond", "Grade"},
	"features":  {"Features", "C:Parallel/Variety", "Feature", "Parallel", "Insert", "Attributes"},
	"image":     {"Image URL", "PicURL", "Image", "Photo URL", "Photo"},
	"id":        {"SKU", "Custom label (SKU)", "CustomLabel", "Item ID", "Inventory ID", "ID"},
}

// resolver indexes one record's keys case-insensitively so alias lookup
// is total: an unmatched field resolves to "", never an error.
type resolver struct {
	byFold map[string]string
}

func newResolver(rec tabular.Record) resolver {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	// Fold in sorted key order so case-variant duplicate headers resolve
	// the same way on every pass, not per map iteration order.
	sort.Strings(keys)

	byFold := make(map[string]string, len(rec))
	for _, key := range keys {
		fold := strings.ToLower(strings.TrimSpace(key))
		if v, ok := byFold[fold]; !ok || v == "" {
			byFold[fold] = rec[key]
		}
	}
	return resolver{byFold: byFold}
}

func (r resolver) field(name string) string {
	for _, alias := range fieldAliases[name] {
		if v := r.byFold[strings.ToLower(alias)]; v != "" {
			return v
		}
	}
	return ""
}

// Normalize builds a Card from one decoded record.
func Normalize(rec tabular.Record) Card {
	r := newResolver(rec)

	c := Card{
		Name:      r.field("name"),
		Player:    r.field("player"),
		Team:      r.field("team"),
		League:    r.field("league"),
		Sport:     r.field("sport"),
		Season:    r.field("season"),
		Set:       r.field("set"),
		Number:    r.field("number"),
		Brand:     r.field("brand"),
		Condition: r.field("condition"),
		Features:  r.field("features"),
		ImageURL:  r.field("image"),
	}

	c.Year = DeriveYear(c.Name, c.Set)
	c.Serial = DeriveSerial(c.Features, c.Name)
	c.Autograph = DeriveAutograph(c.Features + " " + c.Name)
	c.Title = DeriveTitle(r.field("title"), c.Year, c.Set, c.Player, c.Features, c.Number)

	if id := r.field("id"); id != "" {
		c.Key = id
	} else {
		c.Key = DeriveKey(c.Season, c.Set, c.Player, c.Number, c.Features)
	}

	return c
}

// NormalizeAll normalizes a decoded record sequence in order.
func NormalizeAll(records []tabular.Record) []Card {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, Normalize(rec))
	}
	return cards
}
