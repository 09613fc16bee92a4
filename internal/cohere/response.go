package cohere

import (
	"encoding/json"
	"fmt"
)

// apiError is the vendor's error envelope.
type apiError struct {
	Message string `json:"message"`
}

// vendorError marks a payload that matched the error envelope. Callers map
// it onto the typed provider error of their abstraction.
type vendorError struct {
	message string
}

func (e *vendorError) Error() string {
	return "cohere: " + e.message
}

// payload is implemented by response types that can tell whether a decoded
// body actually carried their shape. json.Unmarshal happily leaves every
// field zero when fed an unrelated object, so structural discrimination
// needs an explicit marker check.
type payload interface {
	ok() bool
}

// decodeEnvelope performs the two-phase parse: try the success shape and
// verify its markers, fall back to the error envelope, and treat anything
// matching neither as a decode failure distinct from a vendor-reported
// error.
func decodeEnvelope[T any, PT interface {
	payload
	*T
}](data []byte) (*T, error) {
	var success T
	if err := json.Unmarshal(data, &success); err == nil && PT(&success).ok() {
		return &success, nil
	}

	var envelope apiError
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
		return nil, &vendorError{message: envelope.Message}
	}

	return nil, fmt.Errorf("cohere: response matches neither success nor error schema: %s", truncateBody(data))
}

func truncateBody(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
