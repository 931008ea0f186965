package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads a backend amount such as "1,250.5" or "۱٬۲۵۰". Thousands separators and
// spaces are stripped and Persian/Arabic-Indic digits are mapped to ASCII before parsing.
// Anything left that is not a plain decimal number is rejected.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.Map(normalizeDigit, strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmount is ParseDecimal restricted to strictly positive values, the only amounts the
// ledger accepts.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	d, ok := ParseDecimal(raw)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

func normalizeDigit(r rune) rune {
	switch {
	case r == ',' || r == '\u066c' || r == ' ' || r == '\u00a0' || r == '\u202f':
		return -1
	case r == '\u066b':
		return '.'
	case r >= '\u06f0' && r <= '\u06f9':
		return '0' + (r - '\u06f0')
	case r >= '\u0660' && r <= '\u0669':
		return '0' + (r - '\u0660')
	}
	return r
}
