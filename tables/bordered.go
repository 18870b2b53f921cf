package tables

import (
	"sort"

	"github.com/finsheet/finsheet/model"
)

// BorderedStrategy extracts tables from ruled lines drawn on the page.
// Horizontal and vertical rules above the minimum length form the grid;
// their intersections define cell boundaries, and text runs are assigned to
// cells by bounding-box containment. Pages without usable rules produce an
// empty result so the selector can fall back to another strategy.
type BorderedStrategy struct {
	config Config
}

// NewBorderedStrategy creates a bordered strategy with default configuration.
func NewBorderedStrategy() *BorderedStrategy {
	return &BorderedStrategy{config: DefaultConfig()}
}

// Name returns "bordered".
func (s *BorderedStrategy) Name() string {
	return StrategyBordered
}

// Configure sets the strategy configuration.
func (s *BorderedStrategy) Configure(config Config) error {
	s.config = config
	return nil
}

// Extract builds a table from the page's ruled lines. A page with no
// detectable grid returns (nil, nil), never an error.
func (s *BorderedStrategy) Extract(page *model.Page) ([]*model.Table, error) {
	if len(page.Fragments) == 0 || len(page.Lines) == 0 {
		return nil, nil
	}

	hPositions, vPositions := s.collectRulePositions(page.Lines)
	if len(hPositions) < s.config.MinRows+1 || len(vPositions) < s.config.MinCols+1 {
		return nil, nil
	}

	grid := model.NewTableGrid()
	grid.Rows = hPositions // sorted descending
	grid.Cols = vPositions // sorted ascending

	table := s.buildTable(grid, page.Fragments)
	if table == nil {
		return nil, nil
	}

	table.Page = page.Number
	table.HasGrid = true
	table.Strategy = StrategyBordered
	return []*model.Table{table}, nil
}

// collectRulePositions filters lines by orientation and length, then
// clusters their positions into distinct rule coordinates. Returns
// horizontal rule Y positions sorted descending and vertical rule X
// positions sorted ascending.
func (s *BorderedStrategy) collectRulePositions(lines []model.Line) (h, v []float64) {
	tol := s.config.AlignmentTolerance

	var hValues, vValues []float64
	for _, line := range lines {
		if line.Length() < s.config.MinLineLength {
			continue
		}
		switch {
		case line.IsHorizontal(tol):
			hValues = append(hValues, (line.Start.Y+line.End.Y)/2)
		case line.IsVertical(tol):
			vValues = append(vValues, (line.Start.X+line.End.X)/2)
		}
	}

	sort.Float64s(hValues)
	sort.Float64s(vValues)

	h = clusterValues(hValues, tol, s.config.MaxClusterIterations)
	v = clusterValues(vValues, tol, s.config.MaxClusterIterations)

	// Grid rows run top to bottom
	sort.Sort(sort.Reverse(sort.Float64Slice(h)))
	return h, v
}

// buildTable assigns fragments to grid cells. A fragment whose bounding box
// crosses column boundaries spans those columns: its text is repeated in
// every spanned position, preserving the row-column rectangularity
// invariant.
func (s *BorderedStrategy) buildTable(grid *model.TableGrid, fragments []model.TextFragment) *model.Table {
	rows, cols := grid.RowCount(), grid.ColCount()
	if rows < s.config.MinRows || cols < s.config.MinCols {
		return nil
	}

	table := model.NewTable(rows, cols)
	assigned := 0

	for _, frag := range fragments {
		row := s.findRow(frag.BBox.Center().Y, grid)
		if row < 0 {
			continue
		}
		colStart, colEnd := s.findColumnSpan(frag.BBox, grid)
		if colStart < 0 {
			continue
		}
		assigned++
		for col := colStart; col <= colEnd; col++ {
			appendCellText(table.GetCell(row, col), frag)
			if colEnd > colStart {
				table.GetCell(row, col).ColSpan = colEnd - colStart + 1
			}
		}
	}

	if assigned == 0 {
		return nil
	}

	table.BBox = grid.BBox()
	table.Confidence = s.confidence(table, grid)
	return table
}

// findRow returns the grid row containing the given Y coordinate, or -1.
func (s *BorderedStrategy) findRow(y float64, grid *model.TableGrid) int {
	for i := 0; i < grid.RowCount(); i++ {
		if y <= grid.Rows[i] && y >= grid.Rows[i+1] {
			return i
		}
	}
	return -1
}

// findColumnSpan returns the first and last grid columns the fragment's
// bounding box overlaps, or (-1, -1) if it lies outside the grid. Slight
// overhang within the alignment tolerance does not count as a span.
func (s *BorderedStrategy) findColumnSpan(bbox model.BBox, grid *model.TableGrid) (int, int) {
	tol := s.config.AlignmentTolerance
	start, end := -1, -1
	for i := 0; i < grid.ColCount(); i++ {
		left, right := grid.Cols[i], grid.Cols[i+1]
		if bbox.Right()-tol <= left || bbox.Left()+tol >= right {
			continue
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	if start < 0 {
		// Center fallback for fragments narrower than the tolerance
		center := bbox.Center().X
		for i := 0; i < grid.ColCount(); i++ {
			if center >= grid.Cols[i] && center <= grid.Cols[i+1] {
				return i, i
			}
		}
	}
	return start, end
}

// confidence scores the detected table by cell occupancy and grid
// regularity, equally weighted.
func (s *BorderedStrategy) confidence(table *model.Table, grid *model.TableGrid) float64 {
	occupancy := table.FillRatio()

	rowHeights := make([]float64, grid.RowCount())
	for i := 0; i < grid.RowCount(); i++ {
		rowHeights[i] = grid.Rows[i] - grid.Rows[i+1]
	}
	regularity := 0.0
	if m := mean(rowHeights); m > 0 {
		cv := variance(rowHeights)
		regularity = 1 - cv/(m*m)
		if regularity < 0 {
			regularity = 0
		}
	}

	return occupancy*0.5 + regularity*0.5
}
