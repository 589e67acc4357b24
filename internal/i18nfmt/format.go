// Package i18nfmt renders amounts, dates and user-facing notification
// messages in Indonesian or English. The API responds with ready-to-display
// strings so every client shows identical wording.
package i18nfmt

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	printerID = message.NewPrinter(language.Indonesian)
	printerEN = message.NewPrinter(language.English)
)

// Rupiah formats an amount in minor units as Indonesian rupiah, e.g.
// "Rp 50.000".
func Rupiah(amount int64) string {
	return "Rp " + printerID.Sprint(number.Decimal(amount))
}

// GroupedNumber formats a plain count with locale-aware grouping.
func GroupedNumber(locale string, n int64) string {
	if locale == "id" {
		return printerID.Sprint(number.Decimal(n))
	}
	return printerEN.Sprint(number.Decimal(n))
}

var monthsID = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// Date formats a timestamp as a short localized date ("2 Agu 2026" /
// "Aug 2, 2026"). Zero times render as a dash, matching the dashboard.
func Date(locale string, t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if locale == "id" {
		return fmt.Sprintf("%d %s %d", t.Day(), monthsID[t.Month()-1], t.Year())
	}
	return t.Format("Jan 2, 2006")
}
