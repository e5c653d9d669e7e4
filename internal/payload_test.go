package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/entity"
)

func testProviderConfig(t *testing.T) *entity.ProviderConfig {
	t.Helper()
	resolved, err := ResolveConfig(newTestConfig("https://api.sandbox.example/nvp"), entity.ProviderExpressCheckout)
	require.NoError(t, err)
	return resolved
}

func TestBuildPayload_Scenario(t *testing.T) {
	payload := BuildPayload(testProviderConfig(t), "SetExpressCheckout", nil, entity.Options{"AMT": "10.00"})

	assert.Equal(t, map[string]string{
		"USER":      "u",
		"PWD":       "p",
		"SIGNATURE": "s",
		"VERSION":   APIVersion,
		"METHOD":    "SetExpressCheckout",
		"AMT":       "10.00",
	}, payload.Map())
	assert.Equal(t, []string{"USER", "PWD", "SIGNATURE", "VERSION", "METHOD", "AMT"}, payload.Keys())
}

func TestBuildPayload_OverridesWin(t *testing.T) {
	options := entity.Options{
		"USER":      "other-user",
		"PWD":       "other-pwd",
		"SIGNATURE": "other-signature",
		"VERSION":   "98",
		"METHOD":    "DoVoid",
	}
	payload := BuildPayload(testProviderConfig(t), "SetExpressCheckout", nil, options)

	for key, value := range options {
		got, ok := payload.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, value, got, key)
	}
	assert.Equal(t, 5, payload.Len())
}

func TestBuildPayload_VerifyIPN(t *testing.T) {
	notification, err := entity.ParsePayload("txn_id=61E67681CH3238416&payment_status=Completed&METHOD=bogus&mc_gross=19.95")
	require.NoError(t, err)

	payload := BuildPayload(testProviderConfig(t), OperationVerifyIPN, notification, nil)

	assert.False(t, payload.Has("METHOD"))
	for _, key := range []string{"txn_id", "payment_status", "mc_gross"} {
		want, _ := notification.Get(key)
		got, ok := payload.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	// notification fields stay first, in their original order
	assert.Equal(t, []string{"txn_id", "payment_status", "mc_gross", "USER", "PWD", "SIGNATURE", "VERSION"}, payload.Keys())
	// the caller's payload is not modified
	assert.True(t, notification.Has("METHOD"))
}

func TestBuildPayload_BaseIgnoredForOtherOperations(t *testing.T) {
	base := entity.NewPayload()
	base.Set("stale", "value")

	payload := BuildPayload(testProviderConfig(t), "GetBalance", base, nil)
	assert.False(t, payload.Has("stale"))
	assert.Equal(t, "GetBalance", payload.Map()["METHOD"])
}

func TestBuildPayload_FreshPerCall(t *testing.T) {
	conf := testProviderConfig(t)

	first := BuildPayload(conf, "DoCapture", nil, entity.Options{"AUTHORIZATIONID": "A1"})
	second := BuildPayload(conf, "DoVoid", nil, entity.Options{"NOTE": "n"})

	assert.True(t, first.Has("AUTHORIZATIONID"))
	assert.False(t, second.Has("AUTHORIZATIONID"))
	assert.Equal(t, "DoVoid", second.Map()["METHOD"])
}
