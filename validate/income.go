package validate

import "github.com/finsheet/finsheet/model"

const incomePrefix = "income_statement"

// incomeStatementChecks runs the income statement rule group
func (e *Engine) incomeStatementChecks(is *model.Statement) []Result {
	if is == nil {
		return failGroup(incomePrefix, 8, "income statement not found")
	}

	results := make([]Result, 0, 8)

	revenue, revFound, revErr := lineItem(is, "revenues", "revenue")
	opIncome, opFound, opErr := lineItem(is, "income from operations", "operating income")

	// 1: revenue present and positive
	results = append(results, rule(
		ruleID(incomePrefix, 1),
		"revenue is recognized",
		revFound && revErr == nil && revenue > 0,
	))

	// 2: gross margin between 10% and 90%
	cost, costFound, costErr := lineItem(is, "cost of revenues", "cost of sales")
	passed := false
	if revFound && costFound && revErr == nil && costErr == nil && revenue > 0 {
		margin := (revenue - cost) / revenue
		passed = margin >= 0.1 && margin <= 0.9
	}
	results = append(results, rule(ruleID(incomePrefix, 2), "gross margin is within industry norms", passed))

	// 3: operating expenses at most 80% of revenue; none recorded is fine
	totalOpEx := 0.0
	opExErr := false
	for _, kw := range []string{"research and development", "sales and marketing", "general and administrative"} {
		value, found, err := lineItem(is, kw)
		if err != nil {
			opExErr = true
		}
		if found && err == nil {
			totalOpEx += value
		}
	}
	passed = true
	if totalOpEx > 0 || opExErr {
		passed = !opExErr && revFound && revErr == nil && revenue > 0 && totalOpEx/revenue <= 0.8
	}
	results = append(results, rule(ruleID(incomePrefix, 3), "operating expenses are reasonable", passed))

	// 4: operating margin between -20% and 50%
	passed = false
	if opFound && revFound && opErr == nil && revErr == nil && revenue > 0 {
		margin := opIncome / revenue
		passed = margin >= -0.2 && margin <= 0.5
	}
	results = append(results, rule(ruleID(incomePrefix, 4), "operating margin is within a plausible range", passed))

	// 5: operating income covers interest expense at least 1.5x; no
	// interest expense passes trivially
	interest, intFound, intErr := lineItem(is, "interest expense", "interest")
	passed = true
	if intFound {
		if intErr != nil || !opFound || opErr != nil {
			passed = false
		} else if interest > 0 {
			passed = opIncome/interest >= 1.5
		}
	}
	results = append(results, rule(ruleID(incomePrefix, 5), "interest coverage is adequate", passed))

	// 6: effective tax rate between 10% and 50%
	tax, taxFound, taxErr := lineItem(is, "provision for income taxes", "income taxes")
	netIncome, niFound, niErr := lineItem(is, "net income")
	passed = false
	if taxFound && niFound && taxErr == nil && niErr == nil && netIncome > 0 {
		rate := tax / (tax + netIncome)
		passed = rate >= 0.1 && rate <= 0.5
	}
	results = append(results, rule(ruleID(incomePrefix, 6), "effective tax rate is reasonable", passed))

	// 7: net income positive
	results = append(results, rule(
		ruleID(incomePrefix, 7),
		"net income is positive",
		niFound && niErr == nil && netIncome > 0,
	))

	// 8: per-share figures disclosed
	_, epsFound, _ := lineItem(is, "basic net income per share", "diluted net income per share")
	results = append(results, rule(ruleID(incomePrefix, 8), "per-share earnings are disclosed", epsFound))

	return results
}
