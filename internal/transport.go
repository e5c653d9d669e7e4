package internal

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"paygate/entity"
)

const defaultTimeout = 30 * time.Second

// Transport posts form-encoded payloads to the gateway over TLS 1.2.
type Transport struct {
	httpClient *http.Client
}

// NewTransport creates an HTTP transport for the resolved provider
// configuration. Certificate verification follows conf.ValidateSSL and the
// client certificate is attached when one was resolved.
func NewTransport(conf *entity.ProviderConfig, timeout time.Duration) (*Transport, error) {
	tlsConfig, err := newTLSConfig(conf)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Transport{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig:     tlsConfig,
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
	}, nil
}

func newTLSConfig(conf *entity.ProviderConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
		// verification is off unless validate_ssl is set
		InsecureSkipVerify: !conf.ValidateSSL,
	}
	if len(conf.CertificatePEM) > 0 {
		certificate, err := tls.X509KeyPair(conf.CertificatePEM, conf.CertificatePEM)
		if err != nil {
			return nil, configurationError("tls", errors.Wrapf(ErrCertificate, "client certificate: %v", err))
		}
		tlsConfig.Certificates = []tls.Certificate{certificate}
	}
	return tlsConfig, nil
}

// Send posts payload to endpoint and returns the response body. Any
// non-2xx status is returned as a transport error wrapping *HTTPError.
func (t *Transport) Send(ctx context.Context, endpoint string, headers map[string]string, payload *entity.Payload) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, newError(KindTransport, "create request", errors.WithStack(err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	response, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(KindTransport, "post request", errors.Wrap(ctx.Err(), "request timeout or cancelled"))
		}
		return nil, newError(KindTransport, "post request", errors.WithStack(err))
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, newError(KindTransport, "read response body", errors.WithStack(err))
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		httpErr := &HTTPError{
			StatusCode: response.StatusCode,
			Status:     http.StatusText(response.StatusCode),
			URL:        endpoint,
			Body:       truncate(string(body), 512),
		}
		return nil, newError(KindTransport, fmt.Sprintf("status %d", response.StatusCode), errors.WithStack(httpErr))
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
