package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"paygate/config"
	"paygate/entity"
	"paygate/services"
)

// State is the stage a call reached.
type State string

const (
	StateIdle         State = "idle"
	StatePayloadBuilt State = "payload_built"
	StateSent         State = "sent"
	StateDecoded      State = "decoded"
	StateFailed       State = "failed"
)

// Client executes gateway operations. It is immutable after construction, so
// a single client may be shared by concurrent callers; the payload and
// endpoint of a call are local to that call.
type Client struct {
	conf     entity.ProviderConfig
	sender   services.Sender
	logger   services.LogHandler
	database services.Database
	timeout  time.Duration
	options  entity.Options
}

type ClientOption func(*Client)

func WithLogger(logger services.LogHandler) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSender replaces the HTTP transport.
func WithSender(sender services.Sender) ClientOption {
	return func(c *Client) {
		c.sender = sender
	}
}

// WithDatabase enables the call log.
func WithDatabase(database services.Database) ClientOption {
	return func(c *Client) {
		c.database = database
	}
}

// NewClient resolves the credentials of conf for provider and prepares the
// transport. Configuration problems are returned here, before any call.
func NewClient(conf *config.Config, provider entity.Provider, opts ...ClientOption) (*Client, error) {
	resolved, err := ResolveConfig(conf, provider)
	if err != nil {
		return nil, err
	}

	client := &Client{
		conf:    *resolved,
		logger:  NewNopLogger(),
		timeout: conf.Timeout,
		options: entity.Options{},
	}
	if client.timeout <= 0 {
		client.timeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.sender == nil {
		transport, e := NewTransport(resolved, client.timeout)
		if e != nil {
			return nil, e
		}
		client.sender = transport
	}

	if !resolved.ValidateSSL {
		client.logger.Warn("ssl validation disabled: gateway certificate is not verified")
	}
	client.logger.Info(fmt.Sprintf("client ready: provider %s; mode %s; user %s; signature %s; api %s",
		resolved.Provider, resolved.Mode, secret(resolved.Username), fingerprint(resolved.Signature), resolved.ApiUrl))

	return client, nil
}

// Config returns a copy of the resolved provider configuration.
func (c *Client) Config() entity.ProviderConfig {
	conf := c.conf
	conf.Headers = make(map[string]string, len(c.conf.Headers))
	for k, v := range c.conf.Headers {
		conf.Headers[k] = v
	}
	return conf
}

// WithCurrency returns a copy of the client using currency code.
func (c *Client) WithCurrency(code string) (*Client, error) {
	if err := ValidateCurrency(code); err != nil {
		return nil, configurationError("currency", err)
	}
	clone := c.clone()
	clone.conf.Currency = code
	return clone, nil
}

// WithOptions returns a copy of the client with options staged for every
// subsequent Execute. Per-call options still take precedence.
func (c *Client) WithOptions(options entity.Options) *Client {
	clone := c.clone()
	clone.options = c.options.With(options)
	return clone
}

func (c *Client) clone() *Client {
	clone := *c
	return &clone
}

type call struct {
	operation string
	endpoint  string
	base      *entity.Payload
	options   entity.Options
}

// Execute runs operation with the staged options overlaid by options. It
// never returns an error: failures come back as an outcome of type error.
func (c *Client) Execute(ctx context.Context, operation string, options entity.Options) entity.Outcome {
	return c.run(ctx, call{
		operation: operation,
		endpoint:  c.endpoint(operation),
		options:   c.options.With(options),
	})
}

// VerifyIPN echoes a notification back to the gateway verification endpoint.
// A successful outcome carries the raw answer, VERIFIED or INVALID.
func (c *Client) VerifyIPN(ctx context.Context, notification *entity.Payload) entity.Outcome {
	base := entity.NewPayload()
	if notification != nil {
		base = notification.Clone()
	}
	base.Prepend("cmd", "_notify-validate")
	return c.run(ctx, call{
		operation: OperationVerifyIPN,
		endpoint:  c.conf.IpnUrl,
		base:      base,
	})
}

// endpoint resolves the URL of operation. Adaptive payments address the
// operation in the path, NVP operations share one URL.
func (c *Client) endpoint(operation string) string {
	if c.conf.Provider == entity.ProviderAdaptivePayments {
		return strings.TrimRight(c.conf.ApiUrl, "/") + "/" + operation
	}
	return c.conf.ApiUrl
}

func (c *Client) run(ctx context.Context, req call) (outcome entity.Outcome) {
	ctx = WithRequestID(ctx)
	reqID := GetRequestID(ctx)
	started := time.Now()
	state := StateIdle

	defer func() {
		if r := recover(); r != nil {
			outcome = c.fail(reqID, req.operation, state, errors.Errorf("panic: %v", r))
			state = StateFailed
		}
		c.recordCall(req, reqID, state, outcome, time.Since(started))
	}()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload := BuildPayload(&c.conf, req.operation, req.base, req.options)
	state = StatePayloadBuilt
	c.logger.Debug(fmt.Sprintf("[%s] %s: %d fields to %s", reqID, req.operation, payload.Len(), req.endpoint))

	body, err := c.sender.Send(ctx, req.endpoint, c.conf.Headers, payload)
	if err != nil {
		outcome, state = c.fail(reqID, req.operation, state, err), StateFailed
		return outcome
	}
	state = StateSent

	outcome, err = DecodeResponse(req.operation, body)
	if err != nil {
		outcome, state = c.fail(reqID, req.operation, state, err), StateFailed
		return outcome
	}
	state = StateDecoded
	outcome.RequestId = reqID

	if req.operation == OperationVerifyIPN {
		c.logger.Info(fmt.Sprintf("[%s] %s: %s", reqID, req.operation, outcome.Raw))
	} else {
		c.logger.Info(fmt.Sprintf("[%s] %s: ack %s", reqID, req.operation, outcome.Ack()))
	}
	return outcome
}

// fail converts err into an error outcome carrying its trace.
func (c *Client) fail(reqID, operation string, state State, err error) entity.Outcome {
	var e *Error
	if !errors.As(err, &e) {
		e = newError(KindUnknown, string(state), err)
	}
	c.logger.Error(fmt.Sprintf("[%s] %s failed after %s", reqID, operation, state), e)
	return entity.Outcome{
		Type:      entity.OutcomeError,
		Message:   e.Trace(),
		Err:       e,
		RequestId: reqID,
	}
}

func (c *Client) recordCall(req call, reqID string, state State, outcome entity.Outcome, duration time.Duration) {
	if c.database == nil {
		return
	}
	record := &entity.CallRecord{
		Time:      time.Now(),
		RequestId: reqID,
		Provider:  c.conf.Provider.String(),
		Mode:      c.conf.Mode,
		Operation: req.operation,
		Endpoint:  req.endpoint,
		State:     string(state),
		Ack:       outcome.Ack(),
		Duration:  duration,
	}
	if outcome.Err != nil {
		record.Error = outcome.Err.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.database.WriteLogMessage(ctx, record); err != nil {
		c.logger.Error("write call record", err)
	}
}
