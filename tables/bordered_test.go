package tables

import (
	"testing"

	"github.com/finsheet/finsheet/model"
)

// gridPage builds a page with a 3x2 ruled grid and a fragment in each cell.
func gridPage() *model.Page {
	page := model.NewPage(612, 792)
	page.Number = 1

	// Horizontal rules at Y = 700, 680, 660, 640; vertical at X = 100, 300, 500
	for _, y := range []float64{700, 680, 660, 640} {
		page.Lines = append(page.Lines, model.Line{
			Start: model.Point{X: 100, Y: y},
			End:   model.Point{X: 500, Y: y},
		})
	}
	for _, x := range []float64{100, 300, 500} {
		page.Lines = append(page.Lines, model.Line{
			Start: model.Point{X: x, Y: 640},
			End:   model.Point{X: x, Y: 700},
		})
	}

	cells := []struct {
		text string
		x, y float64
	}{
		{"Description", 110, 685}, {"2024", 310, 685},
		{"Cash", 110, 665}, {"23,466", 310, 665},
		{"Total assets", 110, 645}, {"450,256", 310, 645},
	}
	for _, c := range cells {
		page.Fragments = append(page.Fragments, model.TextFragment{
			Text: c.text,
			BBox: model.BBox{X: c.x, Y: c.y, Width: 80, Height: 10},
		})
	}
	return page
}

func TestBorderedStrategy_Name(t *testing.T) {
	s := NewBorderedStrategy()
	if s.Name() != StrategyBordered {
		t.Errorf("Name() = %q, want %q", s.Name(), StrategyBordered)
	}
}

func TestBorderedStrategy_Extract(t *testing.T) {
	s := NewBorderedStrategy()
	got, err := s.Extract(gridPage())
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Extract() returned %d tables, want 1", len(got))
	}

	table := got[0]
	if !table.HasGrid {
		t.Error("table should have HasGrid set")
	}
	if table.Strategy != StrategyBordered {
		t.Errorf("Strategy = %q, want %q", table.Strategy, StrategyBordered)
	}
	if table.RowCount() != 3 || table.ColCount() != 2 {
		t.Fatalf("table is %dx%d, want 3x2", table.RowCount(), table.ColCount())
	}
	if got := table.CellText(2, 0); got != "Total assets" {
		t.Errorf("cell (2,0) = %q, want \"Total assets\"", got)
	}
	if got := table.CellText(2, 1); got != "450,256" {
		t.Errorf("cell (2,1) = %q, want \"450,256\"", got)
	}
}

func TestBorderedStrategy_NoLines(t *testing.T) {
	// A page without ruled lines must yield an empty result, not an error,
	// so the selector can fall back to another strategy.
	page := model.NewPage(612, 792)
	page.Fragments = []model.TextFragment{
		{Text: "Revenue", BBox: model.BBox{X: 100, Y: 700, Width: 60, Height: 10}},
		{Text: "1,000", BBox: model.BBox{X: 300, Y: 700, Width: 40, Height: 10}},
	}

	s := NewBorderedStrategy()
	got, err := s.Extract(page)
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Extract() returned %d tables on a line-free page, want 0", len(got))
	}
}

func TestBorderedStrategy_SpanningCell(t *testing.T) {
	page := gridPage()
	// Replace the header fragments with one run spanning both columns
	page.Fragments[0] = model.TextFragment{
		Text: "CONSOLIDATED BALANCE SHEETS",
		BBox: model.BBox{X: 110, Y: 685, Width: 380, Height: 10},
	}
	page.Fragments = append(page.Fragments[:1], page.Fragments[2:]...)

	s := NewBorderedStrategy()
	got, err := s.Extract(page)
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Extract() returned %d tables, want 1", len(got))
	}

	table := got[0]
	// Spanned text is repeated across both column positions, keeping the
	// row rectangular
	if table.CellText(0, 0) != table.CellText(0, 1) {
		t.Errorf("spanned cell not repeated: (0,0)=%q (0,1)=%q",
			table.CellText(0, 0), table.CellText(0, 1))
	}
	if table.CellText(0, 0) == "" {
		t.Error("spanned cell is empty")
	}
}

func TestBorderedStrategy_ShortLinesIgnored(t *testing.T) {
	page := gridPage()
	// Underline decorations shorter than MinLineLength must not create
	// phantom grid rows
	page.Lines = append(page.Lines, model.Line{
		Start: model.Point{X: 110, Y: 670},
		End:   model.Point{X: 120, Y: 670},
	})

	s := NewBorderedStrategy()
	got, err := s.Extract(page)
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	if len(got) != 1 || got[0].RowCount() != 3 {
		t.Errorf("short decoration line changed the grid")
	}
}
