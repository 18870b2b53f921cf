// Package report assembles and serializes the output of a document run:
// the extracted statements plus the validation verdicts, as JSON and as a
// spreadsheet workbook.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/validate"
)

// Validation is the serialized form of a validation report
type Validation struct {
	ChecklistResults   map[string]bool              `json:"checklist_results"`
	Summary            validate.Summary             `json:"summary"`
	BalanceSheetTotals *validate.BalanceSheetTotals `json:"balance_sheet_totals,omitempty"`

	// Details carries the per-rule deltas behind the boolean checklist
	Details []validate.Result `json:"details,omitempty"`
}

// Bundle is the complete result of one document run
type Bundle struct {
	Source     string             `json:"source,omitempty"`
	Statements []*model.Statement `json:"statements"`
	Validation Validation         `json:"validation"`
}

// NewBundle assembles a bundle from extracted statements and their
// validation report. Unclassified statements are retained.
func NewBundle(source string, statements []*model.Statement, rep *validate.Report) *Bundle {
	checklist := make(map[string]bool, len(rep.Results))
	for _, r := range rep.Results {
		checklist[r.RuleID] = r.Passed
	}

	return &Bundle{
		Source:     source,
		Statements: statements,
		Validation: Validation{
			ChecklistResults:   checklist,
			Summary:            rep.Summary,
			BalanceSheetTotals: rep.BalanceSheetTotals,
			Details:            rep.Results,
		},
	}
}

// WriteJSON writes the bundle as indented JSON
func (b *Bundle) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("report: encode bundle: %w", err)
	}
	return nil
}

// SaveJSON writes the bundle to a file
func (b *Bundle) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := b.WriteJSON(f); err != nil {
		return err
	}
	return f.Close()
}
