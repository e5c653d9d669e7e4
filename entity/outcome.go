package entity

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Outcome is the result of a gateway call. A call never fails with an error
// value; failures are reported with Type set to OutcomeError.
type Outcome struct {
	Type string `json:"type"`
	// Fields holds the decoded name-value pairs of an NVP response.
	Fields map[string]string `json:"fields,omitempty"`
	// Raw holds the undecoded body of a notification verification.
	Raw string `json:"raw,omitempty"`
	// Message is the diagnostic trace of a failed call.
	Message string `json:"message,omitempty"`
	// Err keeps the structured failure for errors.Is / errors.As.
	Err error `json:"-"`
	// RequestId correlates the outcome with log entries.
	RequestId string `json:"request_id,omitempty"`
}

func (o Outcome) IsError() bool {
	return o.Type == OutcomeError
}

// Get returns a decoded response field, or an empty string.
func (o Outcome) Get(key string) string {
	return o.Fields[key]
}

// Ack returns the gateway acknowledgement code of an NVP response.
func (o Outcome) Ack() string {
	if ack := o.Fields["ACK"]; ack != "" {
		return ack
	}
	return o.Fields["responseEnvelope.ack"]
}

// Acknowledged reports whether the gateway accepted the request, with or
// without warnings.
func (o Outcome) Acknowledged() bool {
	switch o.Ack() {
	case "Success", "SuccessWithWarning":
		return true
	}
	return false
}
