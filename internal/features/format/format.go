// Package format turns chart values and instants into display strings.
// Every function is pure: the chart renderer calls them for axis labels and
// tooltip text but never reimplements the rules.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders v with two decimals and thousands separators: 1234.5 -> "1,234.50".
func Currency(v float64) string {
	return CurrencyDecimals(v, 2)
}

// CurrencyDecimals is Currency with an explicit number of decimals.
func CurrencyDecimals(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0." + strings.Repeat("0", decimals)
	}
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf("%.*f", decimals, v)
}

// Number renders v with thousands separators and no forced decimals.
func Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%v", v)
}

// Percent renders v as "12.34%".
func Percent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

// Compact shortens large values with K/M suffixes: 1500 -> "1.5K", 2000000 -> "2M".
func Compact(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	trim := func(s string) string {
		s = strings.TrimRight(s, "0")
		return strings.TrimRight(s, ".")
	}
	switch {
	case value >= 1e6:
		return sign + trim(fmt.Sprintf("%.1f", value/1e6)) + "M"
	case value >= 1e3:
		return sign + trim(fmt.Sprintf("%.1f", value/1e3)) + "K"
	}
	return sign + fmt.Sprintf("%.0f", value)
}

// Date renders t as YYYY-MM-DD in t's own location.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// ShortDate renders t as MM/DD.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02")
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05")
}

// Duration renders d as "1d 2h 3m 4s", skipping zero parts.
func Duration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = -secs
	}
	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60
	rest := secs % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if rest > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", rest))
	}
	return strings.Join(parts, " ")
}
