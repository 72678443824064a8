package currency

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a supported three-letter currency code
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	CAD Code = "CAD"
	AUD Code = "AUD"
	INR Code = "INR"
	JPY Code = "JPY"
)

// Base is the currency all exchange rates are expressed against
const Base = USD

// ErrUnknownCode is returned when a currency code is not in the supported set
var ErrUnknownCode = errors.New("unknown currency code")

// info holds the display attributes for one currency
type info struct {
	Symbol     string
	MinorUnits int
}

// currencies is the closed set of supported codes.
// JPY has no minor unit; everything else uses two decimal places.
var currencies = map[Code]info{
	USD: {Symbol: "$", MinorUnits: 2},
	EUR: {Symbol: "€", MinorUnits: 2},
	GBP: {Symbol: "£", MinorUnits: 2},
	CAD: {Symbol: "C$", MinorUnits: 2},
	AUD: {Symbol: "A$", MinorUnits: 2},
	INR: {Symbol: "₹", MinorUnits: 2},
	JPY: {Symbol: "¥", MinorUnits: 0},
}

// Codes returns the supported codes in a stable order
func Codes() []Code {
	return []Code{USD, EUR, GBP, CAD, AUD, INR, JPY}
}

// Parse validates a currency code string. Unknown codes are rejected,
// never defaulted.
func Parse(s string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := currencies[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	return code, nil
}

// IsValid reports whether the code is in the supported set
func (c Code) IsValid() bool {
	_, ok := currencies[c]
	return ok
}

// Symbol returns the display symbol for the code, or the code itself
// if it is not supported
func (c Code) Symbol() string {
	if in, ok := currencies[c]; ok {
		return in.Symbol
	}
	return string(c)
}

// MinorUnits returns the number of decimal places for the code
func (c Code) MinorUnits() int {
	if in, ok := currencies[c]; ok {
		return in.MinorUnits
	}
	return 2
}

// FormatAmount renders an amount with the currency's symbol and
// minor-unit count
func (c Code) FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.*f", c.Symbol(), c.MinorUnits(), amount)
}
