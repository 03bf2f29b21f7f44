// Package tabular parses and re-serializes delimited flat-file text.
//
// It handles the two formats the application round-trips: tab-separated
// inventory exports (no quoting) and comma-separated listing templates
// (Excel-style quoting). Parsing is fail-soft: malformed quoting and
// ragged rows never produce an error, only the best decode available.
package tabular

import "strings"

// Record maps a header name (trimmed, as it appeared in the header row)
// to the trimmed cell text for one data row. All records produced by one
// Decode call share the same key set.
type Record map[string]string

// ParseTSV splits tab-separated text into rows of cells.
// Carriage returns are stripped and blank lines dropped; there is no
// quoting or escaping in this format.
func ParseTSV(text string) [][]string {
	text = strings.ReplaceAll(stripBOM(text), "\r", "")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

// ParseCSV parses comma-separated text with Excel-style quoting.
//
// Inside a quoted cell, a doubled quote is a literal quote and commas and
// newlines are data. Outside quotes, comma ends a cell, newline ends a
// row, and carriage returns are dropped to normalize CRLF. A final row is
// emitted even without a trailing newline, and a trailing newline does
// not produce an empty row. An unterminated quote terminates at
// end-of-input with whatever was accumulated.
func ParseCSV(text string) [][]string {
	text = stripBOM(text)

	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
		pending  bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
			pending = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
			pending = true
		case '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
			pending = false
		case '\r':
			// CRLF normalization
		default:
			cell.WriteByte(c)
			pending = true
		}
	}

	// pending distinguishes a final row from a trailing newline: a lone
	// quoted empty cell leaves the buffer empty but must still be emitted.
	if pending {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	return rows
}

// Serialize encodes rows as CSV text. A cell is quoted, with internal
// quotes doubled, only when it contains a comma, a quote, or a newline
// character. Rows are joined with a single newline.
func Serialize(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeCell(cell))
		}
	}
	return b.String()
}

func encodeCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// stripBOM removes a UTF-8 byte order mark. Excel exports routinely
// carry one.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}
