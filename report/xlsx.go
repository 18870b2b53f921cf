package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finsheet/finsheet/model"
)

// sheetNameLimit is the hard cap Excel places on worksheet names
const sheetNameLimit = 31

// SaveWorkbook writes the bundle's statements to an xlsx workbook, one
// sheet per statement: the header row first, then the rows in header
// order.
func (b *Bundle) SaveWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]int)
	for i, stmt := range b.Statements {
		name := sheetName(stmt, i)
		if n := used[name]; n > 0 {
			name = fmt.Sprintf("%.27s (%d)", name, n+1)
		}
		used[sheetName(stmt, i)]++
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("report: rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("report: add sheet %s: %w", name, err)
			}
		}
		if err := writeStatement(f, name, stmt); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save workbook %s: %w", path, err)
	}
	return nil
}

func writeStatement(f *excelize.File, sheet string, stmt *model.Statement) error {
	header := make([]interface{}, len(stmt.Headers))
	for i, h := range stmt.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("report: write header row: %w", err)
	}

	for r, row := range stmt.Rows {
		values := make([]interface{}, len(stmt.Headers))
		for c, h := range stmt.Headers {
			values[c] = row[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("report: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("report: write row %d: %w", r+2, err)
		}
	}
	return nil
}

// sheetName derives a legal, unique worksheet name from a statement
func sheetName(stmt *model.Statement, index int) string {
	name := stmt.Name
	if stmt.Type != model.Unclassified {
		name = stmt.Type.String()
	}
	if name == "" {
		name = fmt.Sprintf("Statement %d", index+1)
	}

	// Excel forbids these characters in sheet names
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name = strings.TrimSpace(replacer.Replace(name))
	if len(name) > sheetNameLimit {
		name = name[:sheetNameLimit]
	}
	return name
}
