package shipit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// APIClient sends a fully built vendor request. The HTTP implementation is
// used in production; MockAPIClient serves canned responses.
type APIClient interface {
	// Do executes req and returns the raw JSON body of a successful response.
	Do(ctx context.Context, req *Request) (Result, error)
}

// Request is one authenticated vendor call.
type Request struct {
	Method string
	// URL is the absolute vendor URL, query included.
	URL string
	// Endpoint is the path as given by the caller, used for logging and metrics.
	Endpoint string
	Header   http.Header
	// Body is JSON-encoded for POST and PUT; ignored otherwise.
	Body any
}

// HasBody reports whether the method carries a JSON payload.
func (r *Request) HasBody() bool {
	return r.Method == http.MethodPost || r.Method == http.MethodPut
}

// Object is a decoded JSON object.
type Object map[string]any

// Get returns the member named key, or nil.
func (o Object) Get(key string) any {
	if o == nil {
		return nil
	}
	return o[key]
}

// Result is a vendor response body. Its shape depends on the endpoint.
type Result struct {
	raw json.RawMessage
}

// NewResult wraps a raw JSON body.
func NewResult(raw []byte) Result {
	return Result{raw: json.RawMessage(raw)}
}

// Raw returns the body as received.
func (r Result) Raw() json.RawMessage {
	return r.raw
}

// IsNull reports whether the body is empty or the JSON literal null.
func (r Result) IsNull() bool {
	trimmed := bytes.TrimSpace(r.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the body into v.
func (r Result) Decode(v any) error {
	if err := json.Unmarshal(r.raw, v); err != nil {
		return NewError(CodeDecodeError, ErrDecode.Message).WithCause(err)
	}
	return nil
}

// Object decodes the body as a JSON object.
func (r Result) Object() (Object, error) {
	var obj Object
	if err := r.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// List decodes the body as a JSON array of objects.
func (r Result) List() ([]Object, error) {
	var list []Object
	if err := r.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// Value decodes the body into a generic value (map, slice, string, float64, bool or nil).
func (r Result) Value() (any, error) {
	if r.IsNull() {
		return nil, nil
	}
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON lets a Result be embedded verbatim in another JSON document.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsNull() {
		return []byte("null"), nil
	}
	return r.raw, nil
}
