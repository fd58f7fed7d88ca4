package payslips

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders an amount in minor units as a currency string with
// the narrow symbol directly prefixed, e.g. 123456/"USD" -> "$1,234.56".
// The symbol and the grouped number are printed separately because the
// currency formatter puts a space between them.
func FormatAmount(cents int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, float64(cents)/100)
	}
	symbol := amountPrinter.Sprint(currency.NarrowSymbol(unit))
	return symbol + amountPrinter.Sprintf("%.2f", float64(cents)/100)
}
