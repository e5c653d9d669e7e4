package entity

// Provider selects the gateway API family a client talks to.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderExpressCheckout
	ProviderAdaptivePayments
)

func (p Provider) String() string {
	switch p {
	case ProviderExpressCheckout:
		return "express_checkout"
	case ProviderAdaptivePayments:
		return "adaptive_payments"
	}
	return "unknown"
}

// ParseProvider maps a provider name to its value; unknown names yield
// ProviderUnknown.
func ParseProvider(name string) Provider {
	switch name {
	case "express_checkout", "express", "ec":
		return ProviderExpressCheckout
	case "adaptive_payments", "adaptive", "ap":
		return ProviderAdaptivePayments
	}
	return ProviderUnknown
}

// ProviderConfig is the flattened configuration of the active environment.
type ProviderConfig struct {
	Provider       Provider
	Mode           string
	Username       string
	Password       string
	Secret         string
	Certificate    string // path to the PEM file, empty for secret based auth
	Signature      string
	CertificatePEM []byte
	AppId          string
	PaymentAction  string
	Locale         string
	Currency       string
	ApiUrl         string
	NotifyUrl      string
	GatewayUrl     string
	IpnUrl         string
	ValidateSSL    bool
	// Headers are sent with every request of the provider.
	Headers map[string]string
}

// UsesCertificate reports whether the signature came from a certificate file.
func (c *ProviderConfig) UsesCertificate() bool {
	return c.Certificate != ""
}
