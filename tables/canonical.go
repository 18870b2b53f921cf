package tables

import (
	"fmt"
	"strings"

	"github.com/finsheet/finsheet/model"
)

// Canonicalize converts a selected rectangular table into a Statement. The
// first table row becomes the header; the first column is the description
// column and is named accordingly when untitled. Duplicate and empty header
// names are disambiguated so row maps never lose cells to key collisions.
//
// The input must be rectangular (run the table through Repair first).
func Canonicalize(t *model.Table) *model.Statement {
	headers := canonicalHeaders(t)

	rows := make([]map[string]string, 0, t.RowCount())
	for i := 1; i < t.RowCount(); i++ {
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			row[h] = t.CellText(i, j)
		}
		rows = append(rows, row)
	}

	return &model.Statement{
		Type:       model.Unclassified,
		PageNumber: t.Page,
		Headers:    headers,
		Rows:       rows,
	}
}

// canonicalHeaders derives unique, non-empty column names from the first
// table row.
func canonicalHeaders(t *model.Table) []string {
	cols := t.ColCount()
	headers := make([]string, cols)
	seen := make(map[string]int, cols)

	for j := 0; j < cols; j++ {
		name := t.CellText(0, j)
		if name == "" {
			if j == 0 {
				name = model.DescriptionColumn
			} else {
				name = fmt.Sprintf("Column %d", j+1)
			}
		}
		name = strings.TrimSpace(name)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s (%d)", name, n+1)
		}
		seen[name]++
		headers[j] = name
	}
	return headers
}
