package tables

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/numeric"
)

// ErrNoTable is returned when no candidate clears the usability threshold.
// A low-confidence guess is worse than an honest "no table found".
var ErrNoTable = errors.New("tables: no usable table found")

// Weights controls candidate scoring. The values are tuning parameters, not
// derived constants; they are exposed through configuration so deployments
// can adjust them against their own document corpus.
type Weights struct {
	Fill        float64 `yaml:"fill"`
	Regularity  float64 `yaml:"regularity"`
	HeaderBonus float64 `yaml:"header_bonus"`

	// MinUsable is the composite score below which every candidate is
	// rejected
	MinUsable float64 `yaml:"min_usable"`
}

// DefaultWeights returns the default scoring weights
func DefaultWeights() Weights {
	return Weights{
		Fill:        0.5,
		Regularity:  0.35,
		HeaderBonus: 0.15,
		MinUsable:   0.35,
	}
}

// scored pairs a repaired candidate with its composite score
type scored struct {
	table *model.Table
	score float64
}

// Select scores every candidate and returns the best one, repaired to a
// rectangular table. Candidates whose raggedness exceeds the repair
// threshold (any row short by two or more cells) are rejected outright.
// Ties are broken by strategy rank: bordered over stream over textpos.
func Select(candidates []*model.Table, w Weights) (*model.Table, error) {
	var usable []scored

	for _, candidate := range candidates {
		if candidate == nil || candidate.RowCount() == 0 {
			continue
		}
		score := Score(candidate, w)
		repaired, err := Repair(candidate)
		if err != nil {
			// Malformed beyond repair; excluded from scoring
			continue
		}
		usable = append(usable, scored{table: repaired, score: score})
	}

	if len(usable) == 0 {
		return nil, ErrNoTable
	}

	sort.SliceStable(usable, func(i, j int) bool {
		if usable[i].score != usable[j].score {
			return usable[i].score > usable[j].score
		}
		return Rank(usable[i].table.Strategy) < Rank(usable[j].table.Strategy)
	})

	best := usable[0]
	if best.score < w.MinUsable {
		return nil, ErrNoTable
	}
	return best.table, nil
}

// Score computes the composite quality score of a candidate: fill ratio,
// row-length regularity, and a bonus when the first row looks like a header
// (every non-empty cell non-numeric).
func Score(t *model.Table, w Weights) float64 {
	fill := t.FillRatio()
	reg := rowRegularity(t)
	hdr := 0.0
	if HasHeaderRow(t) {
		hdr = 1.0
	}
	return w.Fill*fill + w.Regularity*reg + w.HeaderBonus*hdr
}

// rowRegularity returns 1 - (stddev of row lengths / mean row length),
// clamped to [0, 1]. A perfectly rectangular table scores 1.
func rowRegularity(t *model.Table) float64 {
	if t.RowCount() == 0 {
		return 0
	}
	lengths := make([]float64, t.RowCount())
	for i, row := range t.Rows {
		lengths[i] = float64(len(row))
	}
	m := mean(lengths)
	if m == 0 {
		return 0
	}
	reg := 1 - math.Sqrt(variance(lengths))/m
	if reg < 0 {
		return 0
	}
	return reg
}

// HasHeaderRow reports whether the first row looks like a header: at least
// one non-empty cell, and no cell parseable as a number.
func HasHeaderRow(t *model.Table) bool {
	if t.RowCount() == 0 {
		return false
	}
	nonEmpty := 0
	for _, cell := range t.Rows[0] {
		text := strings.TrimSpace(cell.Text)
		if text == "" {
			continue
		}
		nonEmpty++
		if numeric.Normalize(text).Valid() {
			return false
		}
	}
	return nonEmpty > 0
}

// Repair rectangularizes a ragged candidate. A row short of the widest row
// by exactly one cell is padded with a trailing empty cell; a row short by
// two or more is beyond the repair threshold and fails the whole candidate.
func Repair(t *model.Table) (*model.Table, error) {
	cols := t.ColCount()

	repaired := &model.Table{
		Rows:       make([][]model.Cell, t.RowCount()),
		BBox:       t.BBox,
		Page:       t.Page,
		HasGrid:    t.HasGrid,
		Confidence: t.Confidence,
		Strategy:   t.Strategy,
	}

	for i, row := range t.Rows {
		missing := cols - len(row)
		if missing > 1 {
			return nil, fmt.Errorf("tables: row %d missing %d cells, beyond repair threshold", i, missing)
		}
		newRow := make([]model.Cell, cols)
		copy(newRow, row)
		for j := len(row); j < cols; j++ {
			newRow[j] = model.Cell{RowSpan: 1, ColSpan: 1}
		}
		repaired.Rows[i] = newRow
	}

	return repaired, nil
}
