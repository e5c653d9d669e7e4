package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/config"
	"paygate/entity"
)

func TestResolveConfig_Scenario(t *testing.T) {
	conf := newTestConfig("https://api.sandbox.example/nvp")

	resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
	require.NoError(t, err)

	assert.Equal(t, config.ModeSandbox, resolved.Mode)
	assert.Equal(t, "u", resolved.Username)
	assert.Equal(t, "p", resolved.Password)
	assert.Equal(t, "s", resolved.Signature)
	assert.Equal(t, "Sale", resolved.PaymentAction)
	assert.Equal(t, "en_US", resolved.Locale)
	assert.Equal(t, "USD", resolved.Currency)
	assert.Equal(t, "https://api.sandbox.example/nvp", resolved.ApiUrl)
	assert.Equal(t, "https://x/ipn", resolved.NotifyUrl)
	assert.Equal(t, "https://sandbox.example", resolved.GatewayUrl)
	assert.True(t, resolved.ValidateSSL)
	assert.Empty(t, resolved.CertificatePEM)
}

func TestResolveConfig_ModeDefaultsToLive(t *testing.T) {
	for _, mode := range []string{"", "staging", "SANDBOX"} {
		t.Run("mode "+mode, func(t *testing.T) {
			conf := newTestConfig("https://api.sandbox.example/nvp")
			conf.Mode = mode
			conf.Live = config.Environment{Username: "live-user", Password: "live-pass", Secret: "live-secret"}

			resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
			require.NoError(t, err)
			assert.Equal(t, config.ModeLive, resolved.Mode)
			assert.Equal(t, "live-user", resolved.Username)
			assert.Equal(t, "live-secret", resolved.Signature)
			assert.Equal(t, "https://api-3t.paypal.com/nvp", resolved.ApiUrl)
			assert.Equal(t, "https://www.paypal.com/cgi-bin/webscr", resolved.GatewayUrl)
			assert.Equal(t, "https://ipnpb.paypal.com/cgi-bin/webscr", resolved.IpnUrl)
		})
	}
}

func TestResolveConfig_Signature(t *testing.T) {
	t.Run("secret verbatim without certificate", func(t *testing.T) {
		conf := newTestConfig("")
		conf.Sandbox.Secret = "  spaced secret "

		resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
		require.NoError(t, err)
		assert.Equal(t, "  spaced secret ", resolved.Signature)
		assert.Equal(t, "https://api-3t.sandbox.paypal.com/nvp", resolved.ApiUrl)
	})

	t.Run("certificate wins over secret", func(t *testing.T) {
		path, contents := writeCertificate(t)
		conf := newTestConfig("")
		conf.Sandbox.Certificate = path

		resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
		require.NoError(t, err)
		assert.Equal(t, string(contents), resolved.Signature)
		assert.NotEqual(t, "s", resolved.Signature)
		assert.Equal(t, contents, resolved.CertificatePEM)
		assert.Equal(t, "https://api.sandbox.paypal.com/nvp", resolved.ApiUrl)
	})

	t.Run("missing certificate file", func(t *testing.T) {
		conf := newTestConfig("")
		conf.Sandbox.Certificate = filepath.Join(t.TempDir(), "missing.pem")

		_, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindConfiguration))
		assert.ErrorIs(t, err, ErrCertificate)
	})

	t.Run("neither secret nor certificate", func(t *testing.T) {
		conf := newTestConfig("")
		conf.Sandbox.Secret = ""

		_, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestResolveConfig_Defaults(t *testing.T) {
	conf := newTestConfig("")
	conf.Sandbox.PaymentAction = ""
	conf.Sandbox.Locale = ""
	conf.Currency = ""

	resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
	require.NoError(t, err)
	assert.Equal(t, "Sale", resolved.PaymentAction)
	assert.Equal(t, "en_US", resolved.Locale)
	assert.Equal(t, "USD", resolved.Currency)
}

func TestResolveConfig_ValidateSSLDefaultsToFalse(t *testing.T) {
	conf := newTestConfig("")
	conf.ValidateSSL = false

	resolved, err := ResolveConfig(conf, entity.ProviderExpressCheckout)
	require.NoError(t, err)
	assert.False(t, resolved.ValidateSSL)
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(conf *config.Config)
		provider entity.Provider
		want     error
	}{
		{
			name:     "unsupported provider",
			mutate:   func(conf *config.Config) {},
			provider: entity.ProviderUnknown,
			want:     ErrUnsupportedProvider,
		},
		{
			name:     "unsupported currency",
			mutate:   func(conf *config.Config) { conf.Currency = "XYZ" },
			provider: entity.ProviderExpressCheckout,
			want:     ErrUnsupportedCurrency,
		},
		{
			name:     "missing username",
			mutate:   func(conf *config.Config) { conf.Sandbox.Username = "" },
			provider: entity.ProviderExpressCheckout,
			want:     ErrInvalidCredentials,
		},
		{
			name:     "empty live block",
			mutate:   func(conf *config.Config) { conf.Mode = config.ModeLive },
			provider: entity.ProviderAdaptivePayments,
			want:     ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := newTestConfig("")
			tt.mutate(conf)

			_, err := ResolveConfig(conf, tt.provider)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsKind(err, KindConfiguration))
		})
	}

	_, err := ResolveConfig(nil, entity.ProviderExpressCheckout)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveConfig_AdaptivePayments(t *testing.T) {
	conf := newTestConfig("")
	conf.Sandbox.GatewayUrl = ""
	conf.Sandbox.IpnUrl = ""

	resolved, err := ResolveConfig(conf, entity.ProviderAdaptivePayments)
	require.NoError(t, err)

	assert.Equal(t, "https://svcs.sandbox.paypal.com/AdaptivePayments", resolved.ApiUrl)
	assert.Equal(t, "https://www.sandbox.paypal.com/cgi-bin/webscr", resolved.GatewayUrl)
	assert.Equal(t, "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr", resolved.IpnUrl)
	assert.Equal(t, sandboxAppId, resolved.AppId)
	assert.Equal(t, map[string]string{
		"X-PAYPAL-SECURITY-USERID":      "u",
		"X-PAYPAL-SECURITY-PASSWORD":    "p",
		"X-PAYPAL-SECURITY-SIGNATURE":   "s",
		"X-PAYPAL-REQUEST-DATA-FORMAT":  "NV",
		"X-PAYPAL-RESPONSE-DATA-FORMAT": "NV",
		"X-PAYPAL-APPLICATION-ID":       sandboxAppId,
	}, resolved.Headers)
}

func TestResolveConfig_AdaptivePaymentsWithCertificate(t *testing.T) {
	path, _ := writeCertificate(t)
	conf := newTestConfig("")
	conf.Sandbox.Certificate = path
	conf.Sandbox.AppId = "APP-OWN"

	resolved, err := ResolveConfig(conf, entity.ProviderAdaptivePayments)
	require.NoError(t, err)
	assert.Equal(t, "APP-OWN", resolved.Headers["X-PAYPAL-APPLICATION-ID"])
	assert.NotContains(t, resolved.Headers, "X-PAYPAL-SECURITY-SIGNATURE")
}
