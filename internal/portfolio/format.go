package portfolio

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators, e.g. $12,345.67.
func FormatMoney(amount decimal.Decimal) string {
	f := amount.Round(2).InexactFloat64()
	if f < 0 {
		return printer.Sprintf("-$%.2f", -f)
	}
	return printer.Sprintf("$%.2f", f)
}

// FormatPercent renders a signed percentage, e.g. +1.23% or -0.50%.
func FormatPercent(pct float64) string {
	if pct >= 0 {
		return printer.Sprintf("+%.2f%%", pct)
	}
	return printer.Sprintf("%.2f%%", pct)
}
