package tables

import (
	"sort"

	"github.com/finsheet/finsheet/model"
)

// StreamStrategy extracts tables from whitespace structure alone, for pages
// whose tables are drawn without ruled lines. Text runs are grouped into
// rows by vertical gap and into columns by horizontal gap. The two
// tolerances are independent: financial statements typically combine tight
// line spacing with wide column gutters, and coupling the knobs misdetects
// one axis or the other.
type StreamStrategy struct {
	config Config
}

// NewStreamStrategy creates a stream strategy with default configuration.
func NewStreamStrategy() *StreamStrategy {
	return &StreamStrategy{config: DefaultConfig()}
}

// Name returns "stream".
func (s *StreamStrategy) Name() string {
	return StrategyStream
}

// Configure sets the strategy configuration.
func (s *StreamStrategy) Configure(config Config) error {
	s.config = config
	return nil
}

// Extract clusters the page's text runs into a grid. Returns (nil, nil)
// when the page has no whitespace structure worth keeping.
func (s *StreamStrategy) Extract(page *model.Page) ([]*model.Table, error) {
	if len(page.Fragments) == 0 {
		return nil, nil
	}

	rows := s.groupRows(page.Fragments)
	if len(rows) < s.config.MinRows {
		return nil, nil
	}

	boundaries := s.columnBoundaries(rows)
	if len(boundaries)+1 < s.config.MinCols {
		return nil, nil
	}

	table := s.buildTable(rows, boundaries)
	if table == nil {
		return nil, nil
	}

	table.Page = page.Number
	table.Strategy = StrategyStream
	return []*model.Table{table}, nil
}

// groupRows splits fragments into rows wherever the vertical gap between
// consecutive baselines exceeds RowGapTolerance. Each row is returned
// sorted left to right.
func (s *StreamStrategy) groupRows(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := sortFragments(fragments)

	var rows [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	lastY := sorted[0].BBox.Y

	for _, frag := range sorted[1:] {
		if lastY-frag.BBox.Y > s.config.RowGapTolerance {
			rows = append(rows, sortRowByX(current))
			current = nil
			lastY = frag.BBox.Y
		}
		current = append(current, frag)
	}
	rows = append(rows, sortRowByX(current))
	return rows
}

func sortRowByX(row []model.TextFragment) []model.TextFragment {
	sort.Slice(row, func(i, j int) bool {
		return row[i].BBox.X < row[j].BBox.X
	})
	return row
}

// columnBoundaries finds X positions that separate columns: midpoints of
// horizontal gaps wider than ColGapTolerance, clustered across rows.
// Clustering is iteration-bounded to survive pathological layouts.
func (s *StreamStrategy) columnBoundaries(rows [][]model.TextFragment) []float64 {
	var candidates []float64
	iterations := 0
	for _, row := range rows {
		for i := 1; i < len(row); i++ {
			iterations++
			if iterations > s.config.MaxClusterIterations {
				break
			}
			gap := row[i].BBox.Left() - row[i-1].BBox.Right()
			if gap > s.config.ColGapTolerance {
				candidates = append(candidates, row[i-1].BBox.Right()+gap/2)
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	sort.Float64s(candidates)

	// A gutter narrower than the column gap tolerance is the same gutter
	// seen from adjacent rows
	return clusterValues(candidates, s.config.ColGapTolerance, s.config.MaxClusterIterations)
}

// buildTable assigns each row's fragments to cells between the column
// boundaries. A fragment straddling a boundary spans the columns on both
// sides; its text is repeated in every spanned position.
func (s *StreamStrategy) buildTable(rows [][]model.TextFragment, boundaries []float64) *model.Table {
	cols := len(boundaries) + 1
	table := model.NewTable(len(rows), cols)

	for r, row := range rows {
		for _, frag := range row {
			start := columnIndex(frag.BBox.Left(), boundaries)
			end := columnIndex(frag.BBox.Right(), boundaries)
			for c := start; c <= end; c++ {
				appendCellText(table.GetCell(r, c), frag)
				if end > start {
					table.GetCell(r, c).ColSpan = end - start + 1
				}
			}
		}
	}

	if table.FillRatio() == 0 {
		return nil
	}

	table.BBox = tableBBox(rows)
	table.Confidence = table.FillRatio()
	return table
}

// columnIndex returns the column a given X coordinate falls into
func columnIndex(x float64, boundaries []float64) int {
	for i, b := range boundaries {
		if x < b {
			return i
		}
	}
	return len(boundaries)
}

// tableBBox computes the union bounding box of all fragments
func tableBBox(rows [][]model.TextFragment) model.BBox {
	var bbox model.BBox
	for _, row := range rows {
		for _, frag := range row {
			if bbox.IsEmpty() {
				bbox = frag.BBox
			} else {
				bbox = bbox.Union(frag.BBox)
			}
		}
	}
	return bbox
}
