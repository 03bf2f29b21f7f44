package tabular

import (
	"fmt"
	"strings"
)

// Decode pairs the row at headerRow with every subsequent row and
// returns the trimmed header cells plus one Record per data row.
//
// Header cells are trimmed; an empty header cell at position i becomes
// the synthesized key "col_i" so positional data is never silently
// dropped into a colliding "" key. Data cells beyond the header length
// are discarded and missing trailing cells default to ""; ragged rows
// are the normal case for hand-edited spreadsheets and never error.
func Decode(rows [][]string, headerRow int) ([]string, []Record) {
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, nil
	}

	header := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("col_%d", i)
		}
		header[i] = h
	}

	var records []Record
	for _, row := range rows[headerRow+1:] {
		rec := make(Record, len(header))
		for i, key := range header {
			if i < len(row) {
				rec[key] = strings.TrimSpace(row[i])
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}

	return header, records
}
