package internal

import (
	"crypto/tls"
	"os"

	"github.com/pkg/errors"

	"paygate/config"
	"paygate/entity"
)

const (
	defaultPaymentAction = "Sale"
	defaultLocale        = "en_US"

	// sandboxAppId is the public application id of the adaptive payments sandbox.
	sandboxAppId = "APP-80W284485P519543T"
)

// ResolveConfig selects the active environment of conf and flattens it into
// the provider configuration used by every call of a client.
func ResolveConfig(conf *config.Config, provider entity.Provider) (*entity.ProviderConfig, error) {
	if conf == nil {
		return nil, configurationError("resolve", errors.WithStack(ErrInvalidCredentials))
	}

	mode := conf.ActiveMode()
	env := conf.Environment()

	resolved := &entity.ProviderConfig{
		Provider:      provider,
		Mode:          mode,
		Username:      env.Username,
		Password:      env.Password,
		Secret:        env.Secret,
		Certificate:   env.Certificate,
		AppId:         env.AppId,
		PaymentAction: env.PaymentAction,
		Locale:        env.Locale,
		ApiUrl:        env.ApiUrl,
		NotifyUrl:     env.NotifyUrl,
		GatewayUrl:    env.GatewayUrl,
		IpnUrl:        env.IpnUrl,
		ValidateSSL:   conf.ValidateSSL,
		Headers:       map[string]string{},
	}

	if resolved.Username == "" || resolved.Password == "" {
		return nil, configurationError("resolve", errors.Wrapf(ErrInvalidCredentials, "%s: username and password are required", mode))
	}

	if err := resolveSignature(resolved); err != nil {
		return nil, configurationError("signature", err)
	}

	if resolved.PaymentAction == "" {
		resolved.PaymentAction = defaultPaymentAction
	}
	if resolved.Locale == "" {
		resolved.Locale = defaultLocale
	}

	resolved.Currency = conf.Currency
	if resolved.Currency == "" {
		resolved.Currency = DefaultCurrency
	}
	if err := ValidateCurrency(resolved.Currency); err != nil {
		return nil, configurationError("currency", err)
	}

	switch provider {
	case entity.ProviderExpressCheckout:
		setExpressCheckoutOptions(resolved)
	case entity.ProviderAdaptivePayments:
		setAdaptivePaymentsOptions(resolved)
	default:
		return nil, configurationError("provider", errors.Wrapf(ErrUnsupportedProvider, "provider %s", provider))
	}

	return resolved, nil
}

// resolveSignature uses the certificate contents as signature when a
// certificate path is configured and the plain secret otherwise. The file is
// read only when a path is present.
func resolveSignature(resolved *entity.ProviderConfig) error {
	if resolved.Certificate == "" {
		if resolved.Secret == "" {
			return errors.Wrap(ErrInvalidCredentials, "either secret or certificate is required")
		}
		resolved.Signature = resolved.Secret
		return nil
	}

	contents, err := os.ReadFile(resolved.Certificate)
	if err != nil {
		return errors.Wrapf(ErrCertificate, "read %s: %v", resolved.Certificate, err)
	}
	// the same file carries the client certificate and its key
	if _, err = tls.X509KeyPair(contents, contents); err != nil {
		return errors.Wrapf(ErrCertificate, "parse %s: %v", resolved.Certificate, err)
	}
	resolved.Signature = string(contents)
	resolved.CertificatePEM = contents
	return nil
}

func setExpressCheckoutOptions(resolved *entity.ProviderConfig) {
	sandbox := resolved.Mode == config.ModeSandbox
	if resolved.ApiUrl == "" {
		switch {
		case sandbox && resolved.UsesCertificate():
			resolved.ApiUrl = "https://api.sandbox.paypal.com/nvp"
		case sandbox:
			resolved.ApiUrl = "https://api-3t.sandbox.paypal.com/nvp"
		case resolved.UsesCertificate():
			resolved.ApiUrl = "https://api.paypal.com/nvp"
		default:
			resolved.ApiUrl = "https://api-3t.paypal.com/nvp"
		}
	}
	if resolved.GatewayUrl == "" {
		resolved.GatewayUrl = pick(sandbox, "https://www.sandbox.paypal.com/cgi-bin/webscr", "https://www.paypal.com/cgi-bin/webscr")
	}
	if resolved.IpnUrl == "" {
		resolved.IpnUrl = pick(sandbox, "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr", "https://ipnpb.paypal.com/cgi-bin/webscr")
	}
}

func setAdaptivePaymentsOptions(resolved *entity.ProviderConfig) {
	sandbox := resolved.Mode == config.ModeSandbox
	if resolved.ApiUrl == "" {
		resolved.ApiUrl = pick(sandbox, "https://svcs.sandbox.paypal.com/AdaptivePayments", "https://svcs.paypal.com/AdaptivePayments")
	}
	if resolved.GatewayUrl == "" {
		resolved.GatewayUrl = pick(sandbox, "https://www.sandbox.paypal.com/cgi-bin/webscr", "https://www.paypal.com/cgi-bin/webscr")
	}
	if resolved.IpnUrl == "" {
		resolved.IpnUrl = pick(sandbox, "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr", "https://ipnpb.paypal.com/cgi-bin/webscr")
	}
	if resolved.AppId == "" && sandbox {
		resolved.AppId = sandboxAppId
	}

	resolved.Headers["X-PAYPAL-SECURITY-USERID"] = resolved.Username
	resolved.Headers["X-PAYPAL-SECURITY-PASSWORD"] = resolved.Password
	resolved.Headers["X-PAYPAL-REQUEST-DATA-FORMAT"] = "NV"
	resolved.Headers["X-PAYPAL-RESPONSE-DATA-FORMAT"] = "NV"
	resolved.Headers["X-PAYPAL-APPLICATION-ID"] = resolved.AppId
	// certificate clients authenticate with the TLS certificate instead
	if !resolved.UsesCertificate() {
		resolved.Headers["X-PAYPAL-SECURITY-SIGNATURE"] = resolved.Signature
	}
}

func pick(sandbox bool, sandboxValue, liveValue string) string {
	if sandbox {
		return sandboxValue
	}
	return liveValue
}
