// Package classify assigns statement types to extracted tables by keyword
// matching over their header text and first-column labels.
package classify

import (
	"strings"

	"github.com/finsheet/finsheet/model"
)

// Classifier maps statements to a statement type. Keywords are matched
// case-insensitively as substrings; the zero value is not usable, call
// NewClassifier.
type Classifier struct {
	keywords map[model.StatementType][]string
}

// NewClassifier returns a classifier loaded with the standard US-GAAP
// statement vocabulary.
func NewClassifier() *Classifier {
	return &Classifier{
		keywords: map[model.StatementType][]string{
			model.BalanceSheet: {
				"balance sheet",
				"total assets",
				"total liabilities and stockholders",
				"total liabilities and equity",
				"stockholders' equity",
			},
			model.CashFlow: {
				"cash flow",
				"operating activities",
				"investing activities",
				"financing activities",
			},
			model.IncomeStatement: {
				"statements of income",
				"statements of operations",
				"income statement",
				"cost of revenues",
				"cost of sales",
				"gross profit",
				"net income per share",
			},
		},
	}
}

// Classify returns the statement type for a statement, or Unclassified when
// no keyword matches. Balance sheet terms are checked first because they
// are the most distinctive; cash flow before income because "net income"
// appears on cash flow statements too.
func (c *Classifier) Classify(stmt *model.Statement) model.StatementType {
	text := c.searchText(stmt)

	for _, st := range []model.StatementType{model.BalanceSheet, model.CashFlow, model.IncomeStatement} {
		for _, kw := range c.keywords[st] {
			if strings.Contains(text, kw) {
				return st
			}
		}
	}
	return model.Unclassified
}

// searchText concatenates the statement name, headers and first-column
// labels into a single lowercase haystack.
func (c *Classifier) searchText(stmt *model.Statement) string {
	var b strings.Builder
	b.WriteString(stmt.Name)
	b.WriteByte('\n')
	for _, h := range stmt.Headers {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	for _, label := range stmt.FirstColumnLabels() {
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return strings.ToLower(b.String())
}
