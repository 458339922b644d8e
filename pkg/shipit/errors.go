package shipit

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeMissingToken      = "MISSING_TOKEN"
	CodeMissingEmail      = "MISSING_EMAIL"
	CodeEndpointNotFound  = "ENDPOINT_NOT_FOUND"
	CodeConnectionFailure = "CONNECTION_FAILURE"
	CodeUnknownAttribute  = "UNKNOWN_ATTRIBUTE"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeInvalidNumericID  = "INVALID_NUMERIC_ID"
	CodeNotFound          = "NOT_FOUND"
	CodeAPIError          = "API_ERROR"
	CodeDecodeError       = "DECODE_ERROR"
)

// Error is returned by every operation in this package. Two errors are
// considered equal by errors.Is when their codes match, so a constructed
// error carrying context still matches its sentinel.
type Error struct {
	Code       string
	Message    string
	Endpoint   string
	Attribute  string
	Value      string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("shipit (%s): %s", e.Code, e.Message)
	switch {
	case e.Endpoint != "":
		msg += ": " + e.Endpoint
	case e.Attribute != "":
		msg += ": " + e.Attribute
	case e.Value != "":
		msg += ": " + e.Value
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *Error) WithStatusCode(code int) *Error {
	e.StatusCode = code
	return e
}

// WithEndpoint records the URL the error refers to.
func (e *Error) WithEndpoint(endpoint string) *Error {
	e.Endpoint = endpoint
	return e
}

// Sentinel errors, matched with errors.Is.
var (
	// ErrMissingToken indicates no access token is configured.
	ErrMissingToken = NewError(CodeMissingToken, "access token not configured")

	// ErrMissingEmail indicates no account email is configured.
	ErrMissingEmail = NewError(CodeMissingEmail, "account email not configured")

	// ErrEndpointNotFound indicates the vendor answered 404.
	ErrEndpointNotFound = NewError(CodeEndpointNotFound, "endpoint not found")

	// ErrConnectionFailure indicates the vendor could not be reached.
	ErrConnectionFailure = NewError(CodeConnectionFailure, "could not connect")

	// ErrUnknownAttribute indicates a field outside the record's allow-list.
	ErrUnknownAttribute = NewError(CodeUnknownAttribute, "attribute not valid")

	// ErrInvalidReference indicates a reference of 15 characters or more.
	ErrInvalidReference = NewError(CodeInvalidReference, "attribute 'reference' must be under 15 characters in length")

	// ErrInvalidNumericID indicates a shipment id that is not numeric.
	ErrInvalidNumericID = NewError(CodeInvalidNumericID, "id is not a valid number")

	// ErrNotFound indicates a decoded response without an id.
	ErrNotFound = NewError(CodeNotFound, "resource not found")

	// ErrAPI indicates any other non-successful vendor status.
	ErrAPI = NewError(CodeAPIError, "unexpected vendor response")

	// ErrDecode indicates a response body that is not valid JSON.
	ErrDecode = NewError(CodeDecodeError, "could not decode vendor response")
)

func unknownAttribute(name string) *Error {
	e := NewError(CodeUnknownAttribute, ErrUnknownAttribute.Message)
	e.Attribute = name
	return e
}

func invalidReference(value string) *Error {
	e := NewError(CodeInvalidReference, ErrInvalidReference.Message)
	e.Value = value
	return e
}

func invalidNumericID(id string) *Error {
	e := NewError(CodeInvalidNumericID, ErrInvalidNumericID.Message)
	e.Value = id
	return e
}

func notFound(resource string) *Error {
	return NewError(CodeNotFound, resource+" not found")
}

// ErrorCode returns the code of err if it is (or wraps) an *Error, or "" otherwise.
func ErrorCode(err error) string {
	var shipitErr *Error
	if errors.As(err, &shipitErr) {
		return shipitErr.Code
	}
	return ""
}
