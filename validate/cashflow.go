package validate

import (
	"math"

	"github.com/finsheet/finsheet/model"
)

const cashFlowPrefix = "cash_flow"

// maxPlausibleCashSwing bounds the period-over-period change in the cash
// balance; a larger swing almost always means a misread table.
const maxPlausibleCashSwing = 1_000_000

// cashFlowChecks runs the cash flow statement rule group
func (e *Engine) cashFlowChecks(cf *model.Statement) []Result {
	if cf == nil {
		return failGroup(cashFlowPrefix, 8, "cash flow statement not found")
	}

	results := make([]Result, 0, 8)

	opCF, opFound, opErr := lineItem(cf, "net cash provided by operating activities")
	capex, capexFound, capexErr := lineItem(cf, "purchases of property and equipment")
	capex = math.Abs(capex)

	// 1: positive operating cash flow
	results = append(results, rule(
		ruleID(cashFlowPrefix, 1),
		"operating cash flow is positive",
		opFound && opErr == nil && opCF > 0,
	))

	// 2: operating cash flow exceeds net income (earnings are backed by
	// cash, not accruals)
	netIncome, niFound, niErr := lineItem(cf, "net income")
	results = append(results, rule(
		ruleID(cashFlowPrefix, 2),
		"operating cash flow exceeds net income",
		opFound && niFound && opErr == nil && niErr == nil && opCF > netIncome,
	))

	// 3: capital expenditures within operating cash flow; no capex is fine
	passed := true
	if capexFound {
		passed = capexErr == nil && opFound && opErr == nil && opCF > 0 && capex/opCF <= 1.0
	}
	results = append(results, rule(ruleID(cashFlowPrefix, 3), "capital expenditures are sustainable", passed))

	// 4: positive free cash flow
	results = append(results, rule(
		ruleID(cashFlowPrefix, 4),
		"free cash flow is positive",
		opFound && capexFound && opErr == nil && capexErr == nil && opCF-capex > 0,
	))

	// 5: dividends at most half of operating cash flow; none is fine
	dividends, divFound, divErr := lineItem(cf, "dividend payments")
	passed = true
	if divFound {
		passed = divErr == nil && opFound && opErr == nil && opCF > 0 && math.Abs(dividends)/opCF <= 0.5
	}
	results = append(results, rule(ruleID(cashFlowPrefix, 5), "dividend payments are sustainable", passed))

	// 6: share repurchases at most 70% of operating cash flow; none is fine
	repurchases, repFound, repErr := lineItem(cf, "repurchases of stock")
	passed = true
	if repFound {
		passed = repErr == nil && opFound && opErr == nil && opCF > 0 && math.Abs(repurchases)/opCF <= 0.7
	}
	results = append(results, rule(ruleID(cashFlowPrefix, 6), "share repurchases are appropriate", passed))

	// 7: gross debt activity within operating cash flow; none is fine
	debtActivity := 0.0
	debtErr := false
	for _, kw := range []string{"proceeds from issuance of debt", "repayments of debt"} {
		value, found, err := lineItem(cf, kw)
		if err != nil {
			debtErr = true
		}
		if found && err == nil {
			debtActivity += math.Abs(value)
		}
	}
	passed = true
	if debtActivity > 0 || debtErr {
		passed = !debtErr && opFound && opErr == nil && opCF > 0 && debtActivity/opCF <= 1.0
	}
	results = append(results, rule(ruleID(cashFlowPrefix, 7), "debt activity is reasonable", passed))

	// 8: beginning and ending cash balances reconcile plausibly
	cashEnd, endFound, endErr := lineItem(cf, "cash and cash equivalents at end of period")
	cashBegin, beginFound, beginErr := lineItem(cf, "cash and cash equivalents at beginning of period")
	results = append(results, rule(
		ruleID(cashFlowPrefix, 8),
		"cash balance change is plausible",
		endFound && beginFound && endErr == nil && beginErr == nil &&
			math.Abs(cashEnd-cashBegin) < maxPlausibleCashSwing,
	))

	return results
}
