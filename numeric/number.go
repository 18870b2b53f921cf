// Package numeric normalizes financial number formats into signed decimal
// values.
//
// Financial filings format numbers inconsistently: parentheses for negative
// values, comma thousands separators, currency and percent symbols. Normalize
// reduces all of these to a plain signed value. Input that cannot be fully
// parsed yields an invalid [Number], never a partial parse and never a silent
// zero; callers decide what an invalid value means in their context.
package numeric

import (
	"strconv"
	"strings"
)

// currencySymbols are stripped before parsing
const currencySymbols = "$€£¥"

// Number is a normalized numeric value. The zero value is "not a number".
type Number struct {
	value float64
	valid bool
}

// FromFloat returns a valid Number holding the given value
func FromFloat(v float64) Number {
	return Number{value: v, valid: true}
}

// Valid reports whether the Number holds a parsed value
func (n Number) Valid() bool {
	return n.valid
}

// Value returns the numeric value and whether it is valid
func (n Number) Value() (float64, bool) {
	return n.value, n.valid
}

// Float returns the numeric value, or 0 for an invalid Number. Use Value or
// Valid when the distinction between zero and not-a-number matters.
func (n Number) Float() float64 {
	return n.value
}

// Normalize converts a raw cell string into a Number. Rules, in order:
//
//  1. Whitespace is trimmed; an empty string is not a number. Whether blank
//     means zero is a per-context decision that belongs to the caller.
//  2. A value wrapped in parentheses is negative: "(123)" is -123.
//  3. Currency symbols, percent signs, and comma thousands separators are
//     stripped. What remains must be digits, at most one decimal point, and
//     an optional leading minus sign.
//  4. Any residual character fails the whole parse.
func Normalize(raw string) Number {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Number{}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',':
			// thousands separator
		case r == '%':
		case strings.ContainsRune(currencySymbols, r):
		default:
			b.WriteRune(r)
		}
	}
	s = strings.TrimSpace(b.String())

	if strings.HasPrefix(s, "-") {
		if negative {
			// "(-123)" is contradictory, reject it
			return Number{}
		}
		negative = true
		s = s[1:]
	}
	if s == "" {
		return Number{}
	}

	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
			if dots > 1 {
				return Number{}
			}
		case r < '0' || r > '9':
			return Number{}
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	if negative {
		v = -v
	}
	return Number{value: v, valid: true}
}

// Format renders a value in the conventional filing style: comma-grouped
// integer digits, and parentheses instead of a minus sign for negative
// values. Normalize(Format(x)) round-trips for every representable x.
func Format(x float64) string {
	negative := x < 0
	if negative {
		x = -x
	}

	s := strconv.FormatFloat(x, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteString("(")
	}
	b.WriteString(groupThousands(intPart))
	if hasFrac {
		b.WriteString(".")
		b.WriteString(fracPart)
	}
	if negative {
		b.WriteString(")")
	}
	return b.String()
}

// groupThousands inserts commas every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
