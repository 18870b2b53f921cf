package model

import "strings"

// StatementType identifies which financial statement a table represents
type StatementType int

const (
	Unclassified StatementType = iota
	IncomeStatement
	BalanceSheet
	CashFlow
)

func (st StatementType) String() string {
	switch st {
	case IncomeStatement:
		return "IncomeStatement"
	case BalanceSheet:
		return "BalanceSheet"
	case CashFlow:
		return "CashFlow"
	default:
		return "Unclassified"
	}
}

// DescriptionColumn is the header assigned to the label column of a
// statement. The first column of a financial statement table carries the
// line item descriptions and is rarely titled in the source document.
const DescriptionColumn = "Description"

// Statement is the canonical table representation: the selected,
// rectangularized table tagged with a statement type and source page.
//
// Invariant: every row map carries exactly the header's keys; a missing
// cell in the source table is an empty string, never an absent key.
type Statement struct {
	Name       string              `json:"name"`
	Type       StatementType       `json:"-"`
	PageNumber int                 `json:"pageNumber"`
	Headers    []string            `json:"headers"`
	Rows       []map[string]string `json:"tableData"`
}

// ValueColumns returns the headers that carry numeric values, i.e. all
// headers except the description column.
func (s *Statement) ValueColumns() []string {
	cols := make([]string, 0, len(s.Headers))
	for _, h := range s.Headers {
		if h != DescriptionColumn {
			cols = append(cols, h)
		}
	}
	return cols
}

// Description returns the label of the given row
func (s *Statement) Description(row map[string]string) string {
	return strings.TrimSpace(row[DescriptionColumn])
}

// FindRow returns the first row whose description contains any of the given
// keywords (case-insensitive substring match), or nil if none matches.
func (s *Statement) FindRow(keywords ...string) map[string]string {
	for _, row := range s.Rows {
		desc := strings.ToLower(s.Description(row))
		if desc == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return row
			}
		}
	}
	return nil
}

// FirstColumnLabels returns the trimmed description cell of every row
func (s *Statement) FirstColumnLabels() []string {
	labels := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		if d := s.Description(row); d != "" {
			labels = append(labels, d)
		}
	}
	return labels
}
