package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const RupeeSymbol = "₹"

// Formatter renders whole-rupee amounts with the locale's digit grouping.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  RupeeSymbol,
	}
}

// Number formats n with grouping separators and no symbol.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

func (f *Formatter) Amount(n int64) string {
	return f.symbol + f.Number(n)
}
