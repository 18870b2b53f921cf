package validate

import "github.com/finsheet/finsheet/model"

const balancePrefix = "balance_sheet"

// balanceSheetChecks runs the balance sheet rule group. A missing balance
// sheet fails the whole group closed.
func (e *Engine) balanceSheetChecks(bs *model.Statement) []Result {
	if bs == nil {
		return failGroup(balancePrefix, 9, "balance sheet not found")
	}

	results := make([]Result, 0, 9)
	assets := e.TotalAssets(bs)
	liabEquity := e.TotalLiabilitiesEquity(bs)

	// 1: the balance identity, on reported totals
	results = append(results, ruleDelta(
		ruleID(balancePrefix, 1),
		"total assets equal total liabilities and equity",
		liabEquity.Reported,
		assets.Reported,
		e.withinTolerance(assets.Reported, liabEquity.Reported),
	))

	// 2: positive working capital
	currentAssets, caFound, caErr := lineItem(bs, "total current assets")
	currentLiab, clFound, clErr := lineItem(bs, "total current liabilities")
	results = append(results, rule(
		ruleID(balancePrefix, 2),
		"current assets exceed current liabilities",
		caFound && clFound && caErr == nil && clErr == nil && currentAssets > currentLiab,
	))

	// 3: cash between 5% and 30% of total assets
	cash, cashFound, cashErr := lineItem(bs, "cash and cash equivalents")
	passed := false
	if cashFound && cashErr == nil && assets.Reported > 0 {
		ratio := cash / assets.Reported
		passed = ratio >= 0.05 && ratio <= 0.3
	}
	results = append(results, rule(ruleID(balancePrefix, 3), "cash holdings are a reasonable share of assets", passed))

	// 4: accounts receivable at most 20% of total assets
	ar, arFound, arErr := lineItem(bs, "accounts receivable")
	passed = false
	if arFound && arErr == nil && assets.Reported > 0 {
		passed = ar/assets.Reported <= 0.2
	}
	results = append(results, rule(ruleID(balancePrefix, 4), "accounts receivable are not excessive", passed))

	// 5: inventory at most 30% of total assets; carrying none is fine
	inventory, invFound, invErr := lineItem(bs, "inventory")
	passed = true
	if invFound {
		passed = invErr == nil && assets.Reported > 0 && inventory/assets.Reported <= 0.3
	}
	results = append(results, rule(ruleID(balancePrefix, 5), "inventory levels are appropriate", passed))

	// 6: property and equipment at most 60% of total assets; none is fine
	ppe, ppeFound, ppeErr := lineItem(bs, "property and equipment")
	passed = true
	if ppeFound {
		passed = ppeErr == nil && assets.Reported > 0 && ppe/assets.Reported <= 0.6
	}
	results = append(results, rule(ruleID(balancePrefix, 6), "property and equipment are not excessive", passed))

	// 7: goodwill at most 40% of total assets; none is fine
	goodwill, gwFound, gwErr := lineItem(bs, "goodwill")
	passed = true
	if gwFound {
		passed = gwErr == nil && assets.Reported > 0 && goodwill/assets.Reported <= 0.4
	}
	results = append(results, rule(ruleID(balancePrefix, 7), "goodwill is not excessive", passed))

	// 8: debt at most 70% of total assets; carrying none is fine
	totalDebt := 0.0
	debtErr := false
	for _, kw := range []string{"long-term debt", "total liabilities"} {
		value, found, err := lineItem(bs, kw)
		if err != nil {
			debtErr = true
		}
		if found && err == nil {
			totalDebt += value
		}
	}
	passed = true
	if totalDebt > 0 || debtErr {
		passed = !debtErr && assets.Reported > 0 && totalDebt/assets.Reported <= 0.7
	}
	results = append(results, rule(ruleID(balancePrefix, 8), "debt levels are manageable", passed))

	// 9: retained earnings present and non-negative
	retained, reFound, reErr := lineItem(bs, "retained earnings")
	results = append(results, rule(
		ruleID(balancePrefix, 9),
		"retained earnings are non-negative",
		reFound && reErr == nil && retained >= 0,
	))

	return results
}
