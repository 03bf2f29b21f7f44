package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slabworks/lister/internal/card"
)

const testInventory = "Card Name\tPlayer\tSport\tCard Number\tFeatures\tImage URL\tLeague\tTeam\tSeason\tCondition\tBrand\tCard Set\n" +
	"Ronaldo FC\tC. Ronaldo\tSoccer\t10\tAuto /25\thttp://img\tLa Liga\tReal\t2023-2024\tNM\tTopps\t2023 Topps Chrome\r\n" +
	"Messi Leo\tL. Messi\tSoccer\t30\tBase\thttp://img2\tMLS\tInter Miami\t2023\tNM\tPanini\t2023 Panini Prizm\n"

const testTemplate = "Template instructions row, leave in place\n" +
	"*Action(SiteID=US|Country=US|Currency=USD|Version=1193),Custom label (SKU),*Category,*Title,C:Autographed,C:Player/Athlete\n"

func writeSources(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	inv := filepath.Join(dir, "full_card_inventory.tsv")
	if err := os.WriteFile(inv, []byte(testInventory), 0o644); err != nil {
		t.Fatal(err)
	}

	tpl := filepath.Join(dir, "listing_template.csv")
	if err := os.WriteFile(tpl, []byte(testTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	return inv, tpl
}

// ============================================================================
// Load / Reload Tests
// ============================================================================

func TestSession_Reload(t *testing.T) {
	inv, tpl := writeSources(t)

	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Player != "C. Ronaldo" || cards[0].Serial != "25" || !cards[0].Autograph {
		t.Errorf("first card not normalized as expected: %+v", cards[0])
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt should be set after reload")
	}
}

func TestSession_ReloadMissingInventory(t *testing.T) {
	s := NewSession(filepath.Join(t.TempDir(), "absent.tsv"), "", 1)

	if err := s.Reload(); err == nil {
		t.Error("expected descriptive error for missing inventory")
	}
}

func TestSession_NoTemplateDegradesToEmpty(t *testing.T) {
	inv, _ := writeSources(t)

	s := NewSession(inv, "", 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	out, added := s.Export([]string{s.Cards()[0].Key}, card.Filter{})
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	// Empty header: the generated row is zero-length, serialization is
	// just the empty header line.
	if strings.Contains(out, "Ronaldo") {
		t.Errorf("no template columns means no mapped values, got %q", out)
	}
}

// ============================================================================
// Filter / Facet Tests
// ============================================================================

func TestSession_Filter(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	autos := s.Filter(card.Filter{AutoOnly: true})
	if len(autos) != 1 || autos[0].Player != "C. Ronaldo" {
		t.Errorf("auto filter = %+v, want the Ronaldo card only", autos)
	}

	if got := s.Filter(card.Filter{Query: "prizm"}); len(got) != 1 {
		t.Errorf("query filter matched %d cards, want 1", len(got))
	}
}

func TestSession_Facets(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	f := s.Facets()
	if len(f.Sets) != 2 || f.Sets[0] != "2023 Panini Prizm" {
		t.Errorf("Sets = %v, want sorted distinct sets", f.Sets)
	}
	if len(f.Leagues) != 2 {
		t.Errorf("Leagues = %v, want 2 distinct leagues", f.Leagues)
	}
}

func TestSession_Find(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	key := s.Cards()[1].Key
	c, ok := s.Find(key)
	if !ok || c.Player != "L. Messi" {
		t.Errorf("Find(%q) = %+v, %v", key, c, ok)
	}

	if _, ok := s.Find("no-such-key"); ok {
		t.Error("Find should miss on unknown key")
	}
}

// ============================================================================
// Export / Reconciliation Tests
// ============================================================================

func TestSession_ExportAppendsAddRow(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	key := s.Cards()[0].Key
	out, added := s.Export([]string{key}, card.Filter{})

	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 { // preface + header + one generated row
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}

	row := lines[2]
	if !strings.HasPrefix(row, "Add,") {
		t.Errorf("generated row should start with the add action: %q", row)
	}
	if !strings.Contains(row, key) {
		t.Errorf("generated row should carry the identity key in the SKU column: %q", row)
	}
	if !strings.Contains(row, "Ronaldo FC") || !strings.Contains(row, "Yes") {
		t.Errorf("generated row missing mapped values: %q", row)
	}
}

func TestSession_ExportUnknownKeysSkipped(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	_, added := s.Export([]string{"no-such-key"}, card.Filter{})
	if added != 0 {
		t.Errorf("added = %d, want 0 for unknown keys", added)
	}
}

func TestSession_ExportEmptyKeysUsesFilter(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	_, added := s.Export(nil, card.Filter{AutoOnly: true})
	if added != 1 {
		t.Errorf("added = %d, want 1 (filtered export)", added)
	}
}

func TestSession_ExportDoesNotMutateTemplate(t *testing.T) {
	inv, tpl := writeSources(t)
	s := NewSession(inv, tpl, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	s.Export(nil, card.Filter{})
	out, _ := s.Export(nil, card.Filter{})

	// Two exports of the same selection produce identical output; rows
	// appended by the first must not linger in the session's template.
	if got := strings.Count(out, "\nAdd,"); got != 2 {
		t.Errorf("second export has %d generated rows, want 2", got)
	}
}

func TestSession_ReconcileMarksListed(t *testing.T) {
	inv, tplPath := writeSources(t)

	// Simulate a round trip: export, save as the new template, reload.
	s := NewSession(inv, tplPath, 1)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	out, _ := s.Export([]string{s.Cards()[0].Key}, card.Filter{})
	if err := os.WriteFile(tplPath, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Reload(); err != nil {
		t.Fatalf("second Reload() error = %v", err)
	}

	cards := s.Cards()
	if !cards[0].Listed {
		t.Error("exported card should be marked listed after reload")
	}
	if cards[1].Listed {
		t.Error("unexported card should not be marked listed")
	}

	unlisted := s.Filter(card.Filter{UnlistedOnly: true})
	if len(unlisted) != 1 || unlisted[0].Player != "L. Messi" {
		t.Errorf("unlisted filter = %+v, want the Messi card only", unlisted)
	}
}

// ============================================================================
// Loader Tests
// ============================================================================

func TestLoadCards_TSV(t *testing.T) {
	inv, _ := writeSources(t)

	cards, err := LoadCards(inv)
	if err != nil {
		t.Fatalf("LoadCards() error = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[1].Set != "2023 Panini Prizm" {
		t.Errorf("Set = %q, want %q", cards[1].Set, "2023 Panini Prizm")
	}
}

func TestLoadTemplate_HeaderRow(t *testing.T) {
	_, tplPath := writeSources(t)

	tpl, err := LoadTemplate(tplPath, 1)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if len(tpl.Header) != 6 {
		t.Errorf("got %d header columns, want 6", len(tpl.Header))
	}
	if len(tpl.Preface) != 1 {
		t.Errorf("got %d preface rows, want 1", len(tpl.Preface))
	}
}
