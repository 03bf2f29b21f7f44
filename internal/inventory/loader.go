// Package inventory owns the application session: loading the flat-file
// inventory and listing template, holding the normalized record set, and
// producing export blobs.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/slabworks/lister/internal/card"
	"github.com/slabworks/lister/internal/listing"
	"github.com/slabworks/lister/internal/tabular"
)

// LoadCards reads an inventory file and normalizes every record. The
// format is chosen by extension: ".xlsx" workbooks go through excelize,
// everything else is treated as tab-separated text with the header on
// the first physical line. Per-row problems never error; the load
// boundary only fails when the file itself cannot be read.
func LoadCards(path string) ([]card.Card, error) {
	var rows [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		var err error
		rows, err = readWorkbook(path)
		if err != nil {
			return nil, err
		}
	default:
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading inventory %s: %w", path, err)
		}
		rows = tabular.ParseTSV(string(text))
	}

	_, records := tabular.Decode(rows, 0)
	return card.NormalizeAll(records), nil
}

// readWorkbook returns the cell rows of the workbook's first sheet.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// LoadTemplate reads and parses the listing template. headerRow is the
// physical row index of the header within the file; marketplace exports
// usually carry one instructions row above it.
func LoadTemplate(path string, headerRow int) (*listing.Template, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tpl, err := listing.Parse(string(text), headerRow)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return tpl, nil
}
