package internal

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies gateway client failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindTransport
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

var (
	// ErrUnsupportedCurrency is returned for a currency outside the gateway allow-list.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrUnsupportedProvider is returned when no provider variant was selected.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidCredentials is returned when the active environment lacks credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCertificate is returned when the API certificate cannot be loaded.
	ErrCertificate = errors.New("invalid api certificate")
)

// Error wraps a failure with its kind and the stage it happened in.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Trace renders the error with the stack of its cause, one frame per line.
func (e *Error) Trace() string {
	lines := []string{e.Error()}
	detail := fmt.Sprintf("%+v", e.Err)
	for _, line := range strings.Split(detail, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func configurationError(op string, err error) *Error {
	return newError(KindConfiguration, op, err)
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// HTTPError is a non-2xx answer of the gateway.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("POST %s failed with status %d %s: %s", e.URL, e.StatusCode, e.Status, e.Body)
}
