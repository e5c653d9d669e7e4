package internal

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"paygate/entity"
)

// DecodeResponse turns a gateway body into an outcome. Notification
// verification answers with a plain token that is passed through unchanged;
// every other operation answers with an NVP string.
func DecodeResponse(operation string, body []byte) (entity.Outcome, error) {
	if operation == OperationVerifyIPN {
		return entity.Outcome{Type: entity.OutcomeSuccess, Raw: string(body)}, nil
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return entity.Outcome{}, newError(KindDecode, "parse response", errors.Wrapf(err, "body %q", truncate(string(body), 128)))
	}

	fields := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		fields[key] = list[len(list)-1]
	}
	return entity.Outcome{Type: entity.OutcomeSuccess, Fields: fields}, nil
}
