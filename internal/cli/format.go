// Package cli provides formatting utilities for terminal output.
package cli

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatHours formats a fractional hour total.
// e.g., 1.5 -> "1.50h"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}

// FormatMinutes formats minutes into a compact duration.
// e.g., 125 -> "2h 05m", 45 -> "45m"
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatMoney formats an amount in the given ISO currency for the given
// BCP 47 locale tag. Unknown currencies or locales fall back to a plain
// "<amount> <code>" rendering.
func FormatMoney(amount float64, currencyCode, localeTag string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, currencyCode)
	}
	tag, err := language.Parse(localeTag)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
