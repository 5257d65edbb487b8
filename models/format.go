package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storekpi/domain/retail"
)

var tilePrinter = message.NewPrinter(language.English)

// FormatCurrency renders a dollar amount with grouped thousands, e.g.
// "$1,234.56". The sign sits inside the symbol ("$-10.00") to match the
// dashboard's tile convention.
func FormatCurrency(v float64) string {
	return tilePrinter.Sprintf("$%.2f", v)
}

// FormatCount renders an integer with grouped thousands, e.g. "1,234".
func FormatCount(v int) string {
	return tilePrinter.Sprintf("%d", v)
}

// FormatPercent renders a rate as a percentage with two decimals, e.g.
// 0.0667 -> "6.67%".
func FormatPercent(v float64) string {
	return tilePrinter.Sprintf("%.2f%%", v*100)
}

// TilesFor builds the four headline tiles in their fixed display order.
func TilesFor(t retail.Totals) []KPITile {
	return []KPITile{
		{Label: string(retail.KPISales), Value: t.Sales, Formatted: FormatCurrency(t.Sales)},
		{Label: string(retail.KPIQuantity), Value: float64(t.Quantity), Formatted: FormatCount(t.Quantity)},
		{Label: string(retail.KPIProfit), Value: t.Profit, Formatted: FormatCurrency(t.Profit)},
		{Label: string(retail.KPIMarginRate), Value: t.MarginRate, Formatted: FormatPercent(t.MarginRate)},
	}
}
