package shipit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/shipit/pkg/shipit"
)

func TestError_Error(t *testing.T) {
	err := shipit.NewError(shipit.CodeAPIError, "commune is required")
	assert.Equal(t, "shipit (API_ERROR): commune is required", err.Error())
}

func TestError_ErrorWithEndpoint(t *testing.T) {
	err := shipit.NewError(shipit.CodeEndpointNotFound, "endpoint not found").
		WithEndpoint("https://api.shipit.cl/v/nope")
	assert.Equal(t, "shipit (ENDPOINT_NOT_FOUND): endpoint not found: https://api.shipit.cl/v/nope", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := shipit.NewError(shipit.CodeConnectionFailure, "could not connect").WithCause(cause)
	assert.Contains(t, err.Error(), "could not connect")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := shipit.NewError(shipit.CodeConnectionFailure, "could not connect").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestError_Is(t *testing.T) {
	err := shipit.NewError(shipit.CodeAPIError, "other message").WithStatusCode(500)

	// Same code should match
	assert.True(t, errors.Is(err, shipit.ErrAPI))
	assert.False(t, errors.Is(err, shipit.ErrDecode))
}

func TestError_IsWrapped(t *testing.T) {
	err := fmt.Errorf("listing regions: %w", shipit.ErrMissingToken)
	assert.True(t, errors.Is(err, shipit.ErrMissingToken))
	assert.Equal(t, shipit.CodeMissingToken, shipit.ErrorCode(err))
}

func TestErrorCode_Foreign(t *testing.T) {
	assert.Equal(t, "", shipit.ErrorCode(errors.New("boom")))
	assert.Equal(t, "", shipit.ErrorCode(nil))
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *shipit.Error
		code string
	}{
		{"MissingToken", shipit.ErrMissingToken, shipit.CodeMissingToken},
		{"MissingEmail", shipit.ErrMissingEmail, shipit.CodeMissingEmail},
		{"EndpointNotFound", shipit.ErrEndpointNotFound, shipit.CodeEndpointNotFound},
		{"ConnectionFailure", shipit.ErrConnectionFailure, shipit.CodeConnectionFailure},
		{"UnknownAttribute", shipit.ErrUnknownAttribute, shipit.CodeUnknownAttribute},
		{"InvalidReference", shipit.ErrInvalidReference, shipit.CodeInvalidReference},
		{"InvalidNumericID", shipit.ErrInvalidNumericID, shipit.CodeInvalidNumericID},
		{"NotFound", shipit.ErrNotFound, shipit.CodeNotFound},
		{"API", shipit.ErrAPI, shipit.CodeAPIError},
		{"Decode", shipit.ErrDecode, shipit.CodeDecodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}
