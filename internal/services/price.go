package services

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.Italian)

// FormatPrice renders a raw price value as an Italian-style display string
// ("." grouping, "," decimal, two fraction digits: 1234.5 -> "1.234,50").
// Values that do not parse as numbers come out blank, so one bad price never
// blocks the rest of the catalog.
func FormatPrice(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ""
	}
	return pricePrinter.Sprintf("%.2f", v)
}
