package clients

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedPayload = errors.New("unexpected non-JSON payload")

// APIError is a non-2xx answer from the catalog API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Detail)
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to communicate with catalog API (%s %s): %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorDetail prefers the "detail" field of a JSON error body and falls back
// to the whole payload.
func errorDetail(payload *Payload) string {
	if payload == nil {
		return ""
	}
	if !payload.IsJSON {
		return payload.Text
	}
	var body map[string]any
	if err := json.Unmarshal(payload.JSON, &body); err == nil {
		if detail, ok := body["detail"]; ok && truthy(detail) {
			if s, ok := detail.(string); ok {
				return s
			}
			if b, err := json.Marshal(detail); err == nil {
				return string(b)
			}
		}
	}
	return compactJSON(payload.JSON)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
