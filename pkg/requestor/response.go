package requestor

import (
	"encoding/json"
	"fmt"
	"net/http"

	dErrors "netki/pkg/domain-errors"
)

// ParseResponse applies the partner API envelope rules to a response body.
//
// A status of 300 or above, or success=false, yields a CodeAPI error carrying
// the envelope message and any sub-failure messages. Otherwise the decoded
// object is returned re-serialized as compact JSON text; key order is not
// preserved.
func ParseResponse(status int, body []byte) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		if status >= http.StatusMultipleChoices {
			return "", dErrors.NewAPI(status, statusMessage(status), nil)
		}
		if err == nil {
			err = fmt.Errorf("response is not a JSON object")
		}
		return "", dErrors.Wrap(err, dErrors.CodeParse, "failed to parse response body")
	}

	failed := status >= http.StatusMultipleChoices
	if raw, ok := obj["success"]; ok && !failed {
		var success bool
		if err := json.Unmarshal(raw, &success); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeParse, "success field is not a boolean")
		}
		failed = !success
	}

	if failed {
		message := statusMessage(status)
		if raw, ok := obj["message"]; ok {
			message = rawText(raw)
		}
		return "", dErrors.NewAPI(status, message, failureMessages(obj["failures"]))
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeParse, "failed to re-encode response body")
	}
	return string(out), nil
}

func failureMessages(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var failures []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &failures); err != nil {
		return nil
	}
	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, rawText(f["message"]))
	}
	return messages
}

// rawText returns a JSON string's value, or the raw token for anything else.
func rawText(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func statusMessage(status int) string {
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
