// Package utils provides number formatting shared by chart legends and
// block sample data.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency formats an amount with a currency symbol and western
// thousands grouping, e.g. 12345.5 → "$12,345.50".
func FormatCurrency(amount float64, symbol string) string {
	negative := amount < 0
	amount = math.Abs(amount)

	cents := int64(math.Round(amount * 100))
	formatted := FormatThousands(cents/100) + fmt.Sprintf(".%02d", cents%100)

	if negative {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// FormatUSD is FormatCurrency with a dollar sign.
func FormatUSD(amount float64) string {
	return FormatCurrency(amount, "$")
}

// FormatCompact formats a number with a k / M / B suffix.
// e.g., 1250 → "1.25k", 3400000 → "3.4M", 999 → "999"
func FormatCompact(n float64) string {
	negative := n < 0
	n = math.Abs(n)

	prefix := ""
	if negative {
		prefix = "-"
	}

	switch {
	case n >= 1e9:
		return prefix + formatWithDecimals(n/1e9) + "B"
	case n >= 1e6:
		return prefix + formatWithDecimals(n/1e6) + "M"
	case n >= 1e3:
		return prefix + formatWithDecimals(n/1e3) + "k"
	default:
		return prefix + formatWithDecimals(n)
	}
}

// FormatPercent formats a 0..1 fraction as a percentage with up to
// decimals places, trailing zeros trimmed. e.g., 0.55 → "55%", 1.0/3 → "33.3%"
func FormatPercent(fraction float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := fmt.Sprintf("%.*f", decimals, fraction*100)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s + "%"
}

// FormatChange formats a signed percentage change.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatChange(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatThousands formats an integer with comma grouping in threes.
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		// Strip the sign textually; -n overflows for math.MinInt64.
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
