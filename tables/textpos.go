package tables

import (
	"sort"

	"github.com/finsheet/finsheet/model"
)

// TextPosStrategy is the fallback extractor for pages that defeat both
// ruled-line and whitespace detection. Text runs are grouped into rows by
// Y-coordinate proximity, then columns are inferred from X positions at
// which runs start in multiple rows. An alignment must be confirmed across
// at least MinColumnSupport rows before it is treated as a column boundary,
// so a single misaligned run cannot fragment a column.
type TextPosStrategy struct {
	config Config
}

// NewTextPosStrategy creates a text-position strategy with default
// configuration.
func NewTextPosStrategy() *TextPosStrategy {
	return &TextPosStrategy{config: DefaultConfig()}
}

// Name returns "textpos".
func (s *TextPosStrategy) Name() string {
	return StrategyTextPos
}

// Configure sets the strategy configuration.
func (s *TextPosStrategy) Configure(config Config) error {
	s.config = config
	return nil
}

// Extract groups text runs by coordinate alignment. Returns (nil, nil) when
// no repeated alignment exists.
func (s *TextPosStrategy) Extract(page *model.Page) ([]*model.Table, error) {
	if len(page.Fragments) == 0 {
		return nil, nil
	}

	rows := s.groupRows(page.Fragments)
	if len(rows) < s.config.MinRows {
		return nil, nil
	}

	starts := s.columnStarts(rows)
	if len(starts) < s.config.MinCols {
		return nil, nil
	}

	table := s.buildTable(rows, starts)
	if table == nil {
		return nil, nil
	}

	table.Page = page.Number
	table.Strategy = StrategyTextPos
	return []*model.Table{table}, nil
}

// groupRows clusters fragments into rows by baseline proximity: fragments
// whose baselines differ by no more than the alignment tolerance share a
// row.
func (s *TextPosStrategy) groupRows(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := sortFragments(fragments)

	var rows [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	rowY := sorted[0].BBox.Y

	for _, frag := range sorted[1:] {
		if rowY-frag.BBox.Y > s.config.AlignmentTolerance {
			rows = append(rows, sortRowByX(current))
			current = nil
			rowY = frag.BBox.Y
		}
		current = append(current, frag)
	}
	rows = append(rows, sortRowByX(current))
	return rows
}

// columnStarts finds X positions where fragments begin in at least
// MinColumnSupport distinct rows. Candidate positions are clustered within
// the alignment tolerance before support is counted.
func (s *TextPosStrategy) columnStarts(rows [][]model.TextFragment) []float64 {
	var xs []float64
	for _, row := range rows {
		for _, frag := range row {
			xs = append(xs, frag.BBox.Left())
		}
	}
	sort.Float64s(xs)
	clustered := clusterValues(xs, s.config.AlignmentTolerance, s.config.MaxClusterIterations)

	// Count how many distinct rows support each clustered position
	var starts []float64
	for _, x := range clustered {
		support := 0
		for _, row := range rows {
			for _, frag := range row {
				if diff := frag.BBox.Left() - x; diff >= -s.config.AlignmentTolerance && diff <= s.config.AlignmentTolerance {
					support++
					break
				}
			}
		}
		if support >= s.config.MinColumnSupport {
			starts = append(starts, x)
		}
	}
	return starts
}

// buildTable assigns each fragment to the column whose start position is
// nearest at or before the fragment's left edge.
func (s *TextPosStrategy) buildTable(rows [][]model.TextFragment, starts []float64) *model.Table {
	table := model.NewTable(len(rows), len(starts))

	assigned := 0
	for r, row := range rows {
		for _, frag := range row {
			col := s.findColumn(frag.BBox.Left(), starts)
			appendCellText(table.GetCell(r, col), frag)
			assigned++
		}
	}
	if assigned == 0 {
		return nil
	}

	table.BBox = tableBBox(rows)
	table.Confidence = table.FillRatio() * 0.9 // coordinate-only grouping is least certain
	return table
}

// findColumn returns the index of the last column start at or before x
// (within tolerance), or 0 when x precedes every start.
func (s *TextPosStrategy) findColumn(x float64, starts []float64) int {
	col := 0
	for i, start := range starts {
		if x >= start-s.config.AlignmentTolerance {
			col = i
		}
	}
	return col
}
