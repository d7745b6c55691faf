package domain

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown for any display field whose source value is missing.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// groupDigits renders v in en-US grouping with at most three fraction digits,
// e.g. 1234567.891 → "1,234,567.891". Digits come from the shortest decimal
// that round-trips to v, so 3.30114e23 renders as 330,114 followed by zero
// groups rather than its exact binary expansion.
func groupDigits(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 3 {
		s = strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 3, 64), "0"), ".")
	}
	neg := strings.HasPrefix(s, "-")
	intPart, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	// Shortest digits never exceed 17 significant figures, so anything past
	// uint64 range ends in whole groups of zeros.
	zeroGroups := 0
	for len(intPart) > 19 && strings.HasSuffix(intPart, "000") {
		intPart = intPart[:len(intPart)-3]
		zeroGroups++
	}
	n, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return s
	}

	out := printer.Sprintf("%v", number.Decimal(n)) + strings.Repeat(",000", zeroGroups)
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// FormatMass renders a mass in kilograms. Values at or above 1e24 are scaled to
// "X.XX × 10²⁴ kg"; smaller values are grouped in plain kilograms. A missing or
// zero mass is not available.
func FormatMass(kg *float64) string {
	if kg == nil || *kg == 0 {
		return NotAvailable
	}
	if *kg >= 1e24 {
		return fmt.Sprintf("%.2f × 10²⁴ kg", *kg/1e24)
	}
	return groupDigits(*kg) + " kg"
}

// FormatDistance renders kilometres as millions of kilometres with one decimal.
// Zero is a real distance and renders as "0.0M km".
func FormatDistance(km *float64) string {
	if km == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1fM km", *km/1e6)
}

// FormatLargeNumber abbreviates with B, M and K suffixes at 1e9, 1e6 and 1e3;
// anything smaller is grouped.
func FormatLargeNumber(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	switch n := *v; {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return groupDigits(n)
	}
}

// FormatDays renders an orbital period in days.
func FormatDays(days *float64) string {
	if days == nil || *days == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f days", *days)
}

// FormatRotation renders a rotation period given in hours. Periods of a day or
// longer are converted to days.
func FormatRotation(hours *float64) string {
	if hours == nil || *hours == 0 {
		return NotAvailable
	}
	if *hours >= 24 {
		return fmt.Sprintf("%.1f days", *hours/24)
	}
	return fmt.Sprintf("%.1f hours", *hours)
}
