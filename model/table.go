package model

import (
	"fmt"
	"strings"
)

// Table represents a detected table with cells organized in rows and columns
type Table struct {
	Rows       [][]Cell
	BBox       BBox
	Page       int     // 1-indexed source page number
	HasGrid    bool    // Whether the table has visible ruled lines
	Confidence float64 // Detection confidence (0-1)
	Strategy   string  // Name of the strategy that produced the table
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:       make([][]Cell, rows),
		Confidence: 1.0,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = Cell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the widest row
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// IsRectangular reports whether every row has the same column count
func (t *Table) IsRectangular() bool {
	if len(t.Rows) == 0 {
		return true
	}
	want := len(t.Rows[0])
	for _, row := range t.Rows[1:] {
		if len(row) != want {
			return false
		}
	}
	return true
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = cell
	return nil
}

// CellText returns the trimmed text of a cell, or "" if out of bounds
func (t *Table) CellText(row, col int) string {
	cell := t.GetCell(row, col)
	if cell == nil {
		return ""
	}
	return strings.TrimSpace(cell.Text)
}

// FillRatio returns the fraction of cells with non-empty text
func (t *Table) FillRatio() float64 {
	total := 0
	filled := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			total++
			if strings.TrimSpace(cell.Text) != "" {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total)
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			text := cell.Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	Text    string
	BBox    BBox
	RowSpan int
	ColSpan int
}

// TableGrid represents detected row and column boundaries
type TableGrid struct {
	Rows []float64 // Y-coordinates of row boundaries, sorted descending
	Cols []float64 // X-coordinates of column boundaries, sorted ascending
}

// NewTableGrid creates a new empty grid
func NewTableGrid() *TableGrid {
	return &TableGrid{
		Rows: make([]float64, 0),
		Cols: make([]float64, 0),
	}
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// GetCellBBox returns the bounding box for a cell
func (g *TableGrid) GetCellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[col],
		Y:      g.Rows[row+1],
		Width:  g.Cols[col+1] - g.Cols[col],
		Height: g.Rows[row] - g.Rows[row+1],
	}
}

// BBox returns the overall bounding box of the grid
func (g *TableGrid) BBox() BBox {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[0],
		Y:      g.Rows[len(g.Rows)-1],
		Width:  g.Cols[len(g.Cols)-1] - g.Cols[0],
		Height: g.Rows[0] - g.Rows[len(g.Rows)-1],
	}
}
