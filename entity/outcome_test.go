package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_Ack(t *testing.T) {
	assert.True(t, Outcome{Fields: map[string]string{"ACK": "Success"}}.Acknowledged())
	assert.True(t, Outcome{Fields: map[string]string{"ACK": "SuccessWithWarning"}}.Acknowledged())
	assert.False(t, Outcome{Fields: map[string]string{"ACK": "Failure"}}.Acknowledged())
	assert.True(t, Outcome{Fields: map[string]string{"responseEnvelope.ack": "Success"}}.Acknowledged())
	assert.Equal(t, "", Outcome{Type: OutcomeError}.Ack())
	assert.True(t, Outcome{Type: OutcomeError}.IsError())
}

func TestParseProvider(t *testing.T) {
	assert.Equal(t, ProviderExpressCheckout, ParseProvider("express_checkout"))
	assert.Equal(t, ProviderAdaptivePayments, ParseProvider("adaptive"))
	assert.Equal(t, ProviderUnknown, ParseProvider("classic"))
	assert.Equal(t, "adaptive_payments", ProviderAdaptivePayments.String())
	assert.Equal(t, "unknown", Provider(42).String())
}
