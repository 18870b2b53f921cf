// Package validate applies rule checks to classified statements: balance
// identities, ratio sanity bounds, and cross-statement consistency. Rules
// are pure functions over extracted data; a failing rule is a result, not
// an error.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/numeric"
)

// DefaultTolerance is the relative tolerance for total comparisons.
// Source filings round line items independently, so exact equality is
// never required; one percent absorbs rounding without masking real
// imbalances.
const DefaultTolerance = 0.01

// errNotANumber marks a row whose non-blank cell failed to parse. It fails
// the rule that touched it; coercing to zero would mask data-quality
// problems upstream.
var errNotANumber = errors.New("validate: cell value is not a number")

// Result is the outcome of a single rule
type Result struct {
	RuleID      string  `json:"rule_id"`
	Description string  `json:"description"`
	Passed      bool    `json:"passed"`
	Computed    float64 `json:"computed,omitempty"`
	Reported    float64 `json:"reported,omitempty"`
	AbsDiff     float64 `json:"abs_diff,omitempty"`
	RelDiff     float64 `json:"rel_diff,omitempty"`
}

// Summary aggregates rule outcomes
type Summary struct {
	TotalChecks  int     `json:"total_checks"`
	PassedChecks int     `json:"passed_checks"`
	FailedChecks int     `json:"failed_checks"`
	PassRate     float64 `json:"pass_rate"`
}

// Summarize recounts the results. Total always equals len(results) and
// passed + failed always equals total.
func Summarize(results []Result) Summary {
	s := Summary{TotalChecks: len(results)}
	for _, r := range results {
		if r.Passed {
			s.PassedChecks++
		}
	}
	s.FailedChecks = s.TotalChecks - s.PassedChecks
	if s.TotalChecks > 0 {
		s.PassRate = math.Round(float64(s.PassedChecks)/float64(s.TotalChecks)*1000) / 10
	}
	return s
}

// BalanceSheetTotals carries the computed-versus-reported totals for both
// sides of the balance sheet.
type BalanceSheetTotals struct {
	Assets            TotalCheck `json:"assets"`
	LiabilitiesEquity TotalCheck `json:"liabilities_equity"`
}

// Report is the full validation output for one document
type Report struct {
	Results            []Result            `json:"results"`
	Summary            Summary             `json:"summary"`
	BalanceSheetTotals *BalanceSheetTotals `json:"balance_sheet_totals,omitempty"`
}

// Engine evaluates the rule set against a document's statements
type Engine struct {
	tolerance float64
}

// NewEngine returns an engine with the default relative tolerance
func NewEngine() *Engine {
	return NewEngineWithTolerance(DefaultTolerance)
}

// NewEngineWithTolerance returns an engine with a custom relative
// tolerance. Non-positive values fall back to the default.
func NewEngineWithTolerance(tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Engine{tolerance: tolerance}
}

// Validate runs every rule group over the given statements. Unclassified
// statements are skipped by type-specific groups but are never dropped by
// the caller's bundle.
func (e *Engine) Validate(statements []*model.Statement) *Report {
	bs := findStatement(statements, model.BalanceSheet)
	is := findStatement(statements, model.IncomeStatement)
	cf := findStatement(statements, model.CashFlow)

	var results []Result
	results = append(results, e.balanceSheetChecks(bs)...)
	results = append(results, e.incomeStatementChecks(is)...)
	results = append(results, e.cashFlowChecks(cf)...)
	results = append(results, e.crossStatementChecks(bs, is, cf)...)

	report := &Report{
		Results: results,
		Summary: Summarize(results),
	}
	if bs != nil {
		report.BalanceSheetTotals = &BalanceSheetTotals{
			Assets:            e.TotalAssets(bs),
			LiabilitiesEquity: e.TotalLiabilitiesEquity(bs),
		}
	}
	return report
}

// findStatement returns the first statement of the given type, or nil
func findStatement(statements []*model.Statement, t model.StatementType) *model.Statement {
	for _, s := range statements {
		if s != nil && s.Type == t {
			return s
		}
	}
	return nil
}

// rowSum sums a row's value columns. Blank cells count as zero; a
// non-blank cell that fails to parse poisons the whole row.
func rowSum(stmt *model.Statement, row map[string]string) (float64, error) {
	sum := 0.0
	for _, col := range stmt.ValueColumns() {
		raw := strings.TrimSpace(row[col])
		if raw == "" {
			continue
		}
		n := numeric.Normalize(raw)
		if !n.Valid() {
			return 0, errNotANumber
		}
		v, _ := n.Value()
		sum += v
	}
	return sum, nil
}

// lineItem locates a row by keywords and sums its value columns.
// found reports whether the row exists; err reports a parse failure.
func lineItem(stmt *model.Statement, keywords ...string) (value float64, found bool, err error) {
	row := stmt.FindRow(keywords...)
	if row == nil {
		return 0, false, nil
	}
	value, err = rowSum(stmt, row)
	return value, true, err
}

// withinTolerance reports whether two values agree within the engine's
// relative tolerance. Two zeros agree exactly.
func (e *Engine) withinTolerance(a, b float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return diff == 0
	}
	return diff <= e.tolerance*scale
}

// rule builds a boolean-only result
func rule(id, description string, passed bool) Result {
	return Result{RuleID: id, Description: description, Passed: passed}
}

// ruleDelta builds a result carrying a computed-versus-reported pair
func ruleDelta(id, description string, computed, reported float64, passed bool) Result {
	r := Result{
		RuleID:      id,
		Description: description,
		Passed:      passed,
		Computed:    computed,
		Reported:    reported,
		AbsDiff:     math.Abs(computed - reported),
	}
	if scale := math.Max(math.Abs(computed), math.Abs(reported)); scale > 0 {
		r.RelDiff = r.AbsDiff / scale
	}
	return r
}

// failGroup emits a failed result for every rule id in a group, used when
// the statement the group needs is absent.
func failGroup(prefix string, count int, description string) []Result {
	results := make([]Result, 0, count)
	for i := 1; i <= count; i++ {
		results = append(results, rule(ruleID(prefix, i), description, false))
	}
	return results
}

func ruleID(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}
