// Package listing maps normalized cards into an externally authored
// marketplace listing template.
//
// The template's CSV header defines the target schema. The marketplace
// tool owns that schema and changes it over time, so everything here is
// schema-defensive: columns are resolved by name, absent columns are
// skipped silently, and re-serialization preserves whatever the template
// already contained.
package listing

import (
	"fmt"

	"github.com/slabworks/lister/internal/tabular"
)

// Template is a parsed listing template: optional preface rows (the
// marketplace export usually carries one instructions row above the
// header), the header that defines the output schema, and the
// pre-existing data rows aligned positionally to it.
type Template struct {
	Preface [][]string
	Header  []string
	Rows    [][]string
}

// Parse decodes template CSV text. headerRow is the physical row index
// of the header; it is caller-supplied configuration, never
// auto-detected. Empty input yields an empty template (no header, so a
// mapper produces zero-length rows). An out-of-range headerRow is a
// load-boundary configuration error.
func Parse(text string, headerRow int) (*Template, error) {
	rows := tabular.ParseCSV(text)
	if len(rows) == 0 {
		return &Template{}, nil
	}
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, fmt.Errorf("template header row %d out of range: file has %d rows", headerRow, len(rows))
	}

	return &Template{
		Preface: rows[:headerRow],
		Header:  rows[headerRow],
		Rows:    rows[headerRow+1:],
	}, nil
}

// Append adds a generated row to the template's row collection.
func (t *Template) Append(row []string) {
	t.Rows = append(t.Rows, row)
}

// Clone returns a copy that can be appended to without mutating the
// session's template.
func (t *Template) Clone() *Template {
	c := &Template{
		Preface: make([][]string, len(t.Preface)),
		Header:  append([]string(nil), t.Header...),
		Rows:    make([][]string, len(t.Rows)),
	}
	copy(c.Preface, t.Preface)
	copy(c.Rows, t.Rows)
	return c
}

// Records decodes the template's existing data rows with its own header,
// for reconciling against inventory.
func (t *Template) Records() []tabular.Record {
	if len(t.Header) == 0 {
		return nil
	}
	all := make([][]string, 0, len(t.Rows)+1)
	all = append(all, t.Header)
	all = append(all, t.Rows...)
	_, records := tabular.Decode(all, 0)
	return records
}

// Serialize re-encodes the template as CSV text. Preface rows are
// preserved verbatim; every data row is padded or truncated to the
// header length first.
func (t *Template) Serialize() string {
	out := make([][]string, 0, len(t.Preface)+1+len(t.Rows))
	out = append(out, t.Preface...)
	if len(t.Header) > 0 || len(t.Rows) > 0 {
		out = append(out, t.Header)
	}
	for _, row := range t.Rows {
		out = append(out, fitRow(row, len(t.Header)))
	}
	return tabular.Serialize(out)
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}
