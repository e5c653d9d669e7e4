package internal

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paygate/config"
)

// newTestConfig returns sandbox credentials pointing the api at apiURL.
func newTestConfig(apiURL string) *config.Config {
	conf := &config.Config{
		Mode:        config.ModeSandbox,
		ValidateSSL: true,
		Currency:    "USD",
		Timeout:     5 * time.Second,
	}
	conf.Sandbox = config.Environment{
		Username:      "u",
		Password:      "p",
		Secret:        "s",
		PaymentAction: "Sale",
		Locale:        "en_US",
		ApiUrl:        apiURL,
		NotifyUrl:     "https://x/ipn",
		GatewayUrl:    "https://sandbox.example",
		IpnUrl:        apiURL + "/cgi-bin/webscr",
	}
	return conf
}

// writeCertificate writes a self-signed certificate and its key into one PEM
// file, the layout of a gateway API certificate.
func writeCertificate(t *testing.T) (string, []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "paygate test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	keyDer, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: der}))
	require.NoError(t, pem.Encode(&buf, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDer}))

	path := filepath.Join(t.TempDir(), "paypal_cert.pem")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path, buf.Bytes()
}
