package excel

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts seen across superstore exports. Ordered most to least
// specific so an early layout never half-matches a later one.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"2006/01/02",
	"02-Jan-2006",
}

// Workbook serial day numbers are anchored at this epoch (the usual
// 1900-system with its leap-year quirk already folded in).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate resolves one Order Date cell: the known string layouts first,
// then a workbook serial day number for sheets whose date format was lost.
// The result is normalized to midnight UTC so the inclusive date-range
// filter treats every order on a day the same way.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// Plausible serial range: 1927 through 2119. Anything outside is
		// more likely a stray numeric cell than a date.
		if serial >= 10000 && serial <= 80000 {
			days := int(serial)
			return serialEpoch.AddDate(0, 0, days), true
		}
	}

	return time.Time{}, false
}

// parseAmount cleans one currency cell before parsing: parenthesized
// negatives, currency symbols, thousands separators, stray percent signs.
func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, "%", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if negative {
		clean = "-" + clean
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// parseCount parses an integer cell, tolerating exports that render counts
// as decorated or fractional-free floats ("3", "3.0", "1,200").
func parseCount(s string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, true
	}
	val, ok := parseAmount(s)
	if !ok {
		return 0, false
	}
	if val != math.Trunc(val) {
		return 0, false
	}
	return int(val), true
}
