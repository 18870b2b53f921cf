package validate

import "github.com/finsheet/finsheet/model"

const crossPrefix = "cross_statement"

// crossStatementChecks runs the rule group spanning two or more
// statements. Any statement a rule needs that is absent fails that rule
// closed.
func (e *Engine) crossStatementChecks(bs, is, cf *model.Statement) []Result {
	results := make([]Result, 0, 8)

	// 1: positive net income alongside positive retained earnings
	passed := false
	if is != nil && bs != nil {
		netIncome, niFound, niErr := lineItem(is, "net income")
		retained, reFound, reErr := lineItem(bs, "retained earnings")
		passed = niFound && reFound && niErr == nil && reErr == nil && netIncome > 0 && retained > 0
	}
	results = append(results, rule(ruleID(crossPrefix, 1), "net income flows to retained earnings", passed))

	// 2: depreciation reported on both the income and cash flow statements
	passed = false
	if is != nil && cf != nil {
		passed = is.FindRow("depreciation") != nil && cf.FindRow("depreciation") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 2), "depreciation is consistent across statements", passed))

	// 3: dividend or retained earnings disclosure present
	passed = false
	if cf != nil && bs != nil {
		passed = cf.FindRow("dividend payments") != nil || bs.FindRow("retained earnings") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 3), "dividends reconcile with retained earnings", passed))

	// 4: capital expenditures have a matching property line
	passed = false
	if cf != nil && bs != nil {
		passed = cf.FindRow("purchases of property and equipment") != nil &&
			bs.FindRow("property and equipment") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 4), "capital expenditures map to property and equipment", passed))

	// 5: debt activity reflected on both statements
	passed = false
	if cf != nil && bs != nil {
		hasCF := cf.FindRow("proceeds from issuance of debt") != nil || cf.FindRow("repayments of debt") != nil
		hasBS := bs.FindRow("long-term debt") != nil || bs.FindRow("total liabilities") != nil
		passed = hasCF && hasBS
	}
	results = append(results, rule(ruleID(crossPrefix, 5), "debt changes are reflected in both statements", passed))

	// 6: both working capital components disclosed
	passed = false
	if bs != nil {
		passed = bs.FindRow("total current assets") != nil && bs.FindRow("total current liabilities") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 6), "working capital components are disclosed", passed))

	// 7: tax expense has a matching cash tax line
	passed = false
	if is != nil && cf != nil {
		passed = is.FindRow("provision for income taxes") != nil && cf.FindRow("income taxes, net") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 7), "tax payments align with tax expense", passed))

	// 8: stock-based compensation recorded somewhere
	passed = false
	if is != nil && cf != nil {
		passed = is.FindRow("stock-based compensation") != nil || cf.FindRow("stock-based compensation") != nil
	}
	results = append(results, rule(ruleID(crossPrefix, 8), "stock-based compensation is recorded", passed))

	return results
}
