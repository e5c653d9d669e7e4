package internal

import (
	"paygate/entity"
)

const (
	// APIVersion is the NVP protocol version sent with every request.
	APIVersion = "123"

	// OperationVerifyIPN echoes a notification back to the gateway.
	OperationVerifyIPN = "verifyipn"
)

// BuildPayload assembles the request body of a call. Fields are layered from
// lowest to highest precedence: base, identity fields, options. The base is
// only used for notification verification, which also drops METHOD.
// The returned payload is always newly allocated.
func BuildPayload(conf *entity.ProviderConfig, operation string, base *entity.Payload, options entity.Options) *entity.Payload {
	var payload *entity.Payload
	if operation == OperationVerifyIPN && base != nil {
		payload = base.Clone()
	} else {
		payload = entity.NewPayload()
	}

	payload.Set("USER", conf.Username)
	payload.Set("PWD", conf.Password)
	payload.Set("SIGNATURE", conf.Signature)
	payload.Set("VERSION", APIVersion)
	payload.Set("METHOD", operation)

	payload.Merge(options)

	if operation == OperationVerifyIPN {
		payload.Delete("METHOD")
	}
	return payload
}
