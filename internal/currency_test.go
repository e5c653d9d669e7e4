package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCurrency(t *testing.T) {
	supported := []string{
		"AUD", "BRL", "CAD", "CZK", "DKK", "EUR", "HKD", "HUF", "ILS", "JPY", "MYR", "MXN",
		"NOK", "NZD", "PHP", "PLN", "GBP", "SGD", "SEK", "CHF", "TWD", "THB", "USD", "RUB",
	}
	for _, code := range supported {
		assert.NoError(t, ValidateCurrency(code), code)
	}
	assert.ElementsMatch(t, supported, SupportedCurrencies())

	for _, code := range []string{"", "usd", "XYZ", "INR", "USD "} {
		assert.ErrorIs(t, ValidateCurrency(code), ErrUnsupportedCurrency, code)
	}
}
