package renderer

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney formats amount in currency, e.g. "₹1,00,500.00" or "$12.50".
//
// Unknown currencies fall back to the amount followed by the code.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// formatQty prints quantities without a trailing ".0" when whole.
func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatRawQty prints an unrounded quantity with two decimals.
func formatRawQty(q float64) string {
	return strconv.FormatFloat(q, 'f', 2, 64)
}
