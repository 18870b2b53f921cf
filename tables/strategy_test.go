package tables

import (
	"fmt"
	"testing"

	"github.com/finsheet/finsheet/model"
)

// manyColumnPage spreads fragments across dozens of gutters on every row,
// the worst case for gap clustering.
func manyColumnPage(cols int) *model.Page {
	page := model.NewPage(2000, 792)
	page.Number = 1
	for r := 0; r < 6; r++ {
		y := 700 - float64(r)*20
		for c := 0; c < cols; c++ {
			page.Fragments = append(page.Fragments, model.TextFragment{
				Text: fmt.Sprintf("c%d", c),
				BBox: model.BBox{X: 40 + float64(c)*60, Y: y, Width: 20, Height: 10},
			})
		}
	}
	return page
}

func TestClusterValues_IterationBound(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i) * 50
	}

	unbounded := clusterValues(values, 10, 0)
	if len(unbounded) != 100 {
		t.Fatalf("unbounded clusters = %d, want 100", len(unbounded))
	}

	bounded := clusterValues(values, 10, 5)
	if len(bounded) != 6 {
		t.Errorf("bounded clusters = %d, want 6 (seed plus 5 examined)", len(bounded))
	}
}

func TestClusterValues_AveragesWithinTolerance(t *testing.T) {
	got := clusterValues([]float64{100, 101, 300}, 5, 0)
	if len(got) != 2 {
		t.Fatalf("got %d clusters, want 2", len(got))
	}
	if got[0] != 100.5 {
		t.Errorf("first cluster = %v, want 100.5", got[0])
	}
}

func TestStreamStrategy_ClusterIterationBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxClusterIterations = 4

	s := NewStreamStrategy()
	if err := s.Configure(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := s.Extract(manyColumnPage(30))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	for _, table := range got {
		if table.ColCount() > cfg.MaxClusterIterations+1 {
			t.Errorf("ColCount() = %d, want at most %d under the iteration bound",
				table.ColCount(), cfg.MaxClusterIterations+1)
		}
	}
}

func TestTextPosStrategy_ClusterIterationBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxClusterIterations = 3

	s := NewTextPosStrategy()
	if err := s.Configure(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := s.Extract(manyColumnPage(30))
	if err != nil {
		t.Fatalf("Extract() failed: %v", err)
	}
	for _, table := range got {
		if table.ColCount() > cfg.MaxClusterIterations+1 {
			t.Errorf("ColCount() = %d, want at most %d under the iteration bound",
				table.ColCount(), cfg.MaxClusterIterations+1)
		}
	}
}
