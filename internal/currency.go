package internal

import (
	"github.com/pkg/errors"
)

const DefaultCurrency = "USD"

var supportedCurrencies = map[string]struct{}{
	"AUD": {}, "BRL": {}, "CAD": {}, "CZK": {}, "DKK": {}, "EUR": {},
	"HKD": {}, "HUF": {}, "ILS": {}, "JPY": {}, "MYR": {}, "MXN": {},
	"NOK": {}, "NZD": {}, "PHP": {}, "PLN": {}, "GBP": {}, "SGD": {},
	"SEK": {}, "CHF": {}, "TWD": {}, "THB": {}, "USD": {}, "RUB": {},
}

// ValidateCurrency checks code against the currencies the gateway accepts.
// Codes are compared verbatim, "usd" is not accepted.
func ValidateCurrency(code string) error {
	if _, ok := supportedCurrencies[code]; !ok {
		return errors.Wrapf(ErrUnsupportedCurrency, "currency %q", code)
	}
	return nil
}

// SupportedCurrencies lists the accepted currency codes in no particular order.
func SupportedCurrencies() []string {
	codes := make([]string, 0, len(supportedCurrencies))
	for code := range supportedCurrencies {
		codes = append(codes, code)
	}
	return codes
}
