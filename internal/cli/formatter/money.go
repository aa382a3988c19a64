package formatter

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix is appended to every money amount.
const CurrencySuffix = "円"

// RateNotSet is shown in place of the hourly wage before one is known.
const RateNotSet = "not set"

var printer = message.NewPrinter(language.Japanese)

// Yen floors amount to a whole number and renders it with locale
// thousands separators and the currency suffix: 1234.9 -> "1,234円".
func Yen(amount float64) string {
	return printer.Sprintf("%d", int64(math.Floor(amount))) + CurrencySuffix
}

// HourlyRate renders a possibly unknown hourly rate for the header.
func HourlyRate(rate *float64) string {
	if rate == nil {
		return RateNotSet
	}
	return Yen(*rate)
}
