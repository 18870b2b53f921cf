package validate

import (
	"math"
	"strings"

	"github.com/finsheet/finsheet/model"
)

// TotalCheck compares a total computed from line items to the total the
// statement reports.
type TotalCheck struct {
	Calculated float64 `json:"calculated"`
	Reported   float64 `json:"reported"`
	Difference float64 `json:"difference"`
	Matches    bool    `json:"matches"`
}

// finalLiabilityTotals are the labels under which a balance sheet reports
// its bottom line.
var finalLiabilityTotals = []string{
	"total liabilities and stockholders",
	"total liabilities and equity",
}

// TotalAssets recomputes total assets by summing asset line items from the
// top of the statement down to the reported "Total assets" row. Subtotal
// rows (any description containing "total") and section headers are
// skipped so no value is counted twice.
func (e *Engine) TotalAssets(bs *model.Statement) TotalCheck {
	row := bs.FindRow("total assets")
	if row == nil {
		return TotalCheck{}
	}
	reported, err := rowSum(bs, row)
	if err != nil {
		return TotalCheck{}
	}

	calculated := 0.0
	clean := true
	for _, r := range bs.Rows {
		desc := strings.ToLower(bs.Description(r))
		if strings.Contains(desc, "total assets") {
			break
		}
		if desc == "" || strings.Contains(desc, "total") || isSectionHeader(desc) {
			continue
		}
		value, err := rowSum(bs, r)
		if err != nil {
			clean = false
			continue
		}
		if value > 0 {
			calculated += value
		}
	}

	return e.totalCheck(calculated, reported, clean)
}

// TotalLiabilitiesEquity recomputes the liabilities-and-equity total by
// summing line items between the section divider and the reported final
// total. Negative values (treasury stock, accumulated deficit) are
// included; the commitments-and-contingencies caption carries no value and
// is skipped.
func (e *Engine) TotalLiabilitiesEquity(bs *model.Statement) TotalCheck {
	row := bs.FindRow(finalLiabilityTotals...)
	if row == nil {
		return TotalCheck{}
	}
	reported, err := rowSum(bs, row)
	if err != nil {
		return TotalCheck{}
	}

	calculated := 0.0
	clean := true
	inSection := false
	for _, r := range bs.Rows {
		desc := strings.ToLower(bs.Description(r))

		if containsAny(desc, finalLiabilityTotals) {
			break
		}
		if strings.Contains(desc, "liabilities and stockholders") || strings.Contains(desc, "liabilities and equity") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if desc == "" || strings.Contains(desc, "total") || isSectionHeader(desc) {
			continue
		}
		if strings.Contains(desc, "commitments and contingencies") {
			continue
		}
		value, err := rowSum(bs, r)
		if err != nil {
			clean = false
			continue
		}
		if value != 0 {
			calculated += value
		}
	}

	return e.totalCheck(calculated, reported, clean)
}

// totalCheck assembles the comparison; a parse failure among the summed
// rows forces a mismatch regardless of the partial sum.
func (e *Engine) totalCheck(calculated, reported float64, clean bool) TotalCheck {
	return TotalCheck{
		Calculated: calculated,
		Reported:   reported,
		Difference: math.Abs(calculated - reported),
		Matches:    clean && e.withinTolerance(calculated, reported),
	}
}

// isSectionHeader reports whether a description is a section caption
// rather than a line item: a trailing colon or a bare section name.
func isSectionHeader(desc string) bool {
	if strings.HasSuffix(desc, ":") {
		return true
	}
	switch desc {
	case "assets", "liabilities and stockholders' equity", "current assets", "current liabilities", "stockholders' equity":
		return true
	}
	return false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
