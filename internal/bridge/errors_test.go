package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBridgeErrorTransport(t *testing.T) {
	t.Run("retryable flag is taken from the transport error", func(t *testing.T) {
		be := newBridgeError("proposals.list", &TransportError{
			Err:       errors.New("connection refused"),
			Retryable: true,
		})
		assert.Equal(t, CodeNetworkError, be.Code)
		assert.True(t, be.Retryable)
		assert.Equal(t, "proposals.list", be.Operation)
		assert.False(t, be.Timestamp.IsZero())
	})

	t.Run("non retryable transport error stays non retryable", func(t *testing.T) {
		// The message mentions a timeout but the typed flag wins.
		be := newBridgeError("proposals.list", &TransportError{
			Err:       errors.New("request aborted before timeout handling"),
			Retryable: false,
		})
		assert.False(t, be.Retryable)
	})

	t.Run("wrapped transport error is still recognized", func(t *testing.T) {
		wrapped := fmt.Errorf("fetch: %w", &TransportError{Err: errors.New("reset"), Retryable: true})
		be := newBridgeError("proposals.get", wrapped)
		assert.Equal(t, CodeNetworkError, be.Code)
		assert.True(t, be.Retryable)
	})
}

func TestNewBridgeErrorAPI(t *testing.T) {
	tests := []struct {
		name      string
		apiErr    *APIError
		wantCode  string
		retryable bool
	}{
		{
			name:     "not found",
			apiErr:   &APIError{Code: "ERR_NOT_FOUND", Message: "no such proposal", StatusCode: 404},
			wantCode: CodeNotFound,
		},
		{
			name:     "forbidden maps to permission denied",
			apiErr:   &APIError{Code: "ERR_FORBIDDEN", Message: "nope", StatusCode: 403},
			wantCode: CodePermissionDenied,
		},
		{
			name:     "validation",
			apiErr:   &APIError{Code: "ERR_VALIDATION", Message: "title required", StatusCode: 400},
			wantCode: CodeValidationError,
		},
		{
			name:      "server side failure is retryable",
			apiErr:    &APIError{Code: "ERR_INTERNAL", Message: "boom", StatusCode: 500},
			wantCode:  "ERR_INTERNAL",
			retryable: true,
		},
		{
			name:      "rate limited is retryable",
			apiErr:    &APIError{Code: "ERR_RATE_LIMITED", Message: "slow down", StatusCode: 429},
			wantCode:  "ERR_RATE_LIMITED",
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := newBridgeError("customers.get", tt.apiErr)
			assert.Equal(t, tt.wantCode, be.Code)
			assert.Equal(t, tt.retryable, be.Retryable)
		})
	}
}

func TestNewBridgeErrorForeign(t *testing.T) {
	t.Run("untyped errors fall back to the message heuristic", func(t *testing.T) {
		be := newBridgeError("proposals.list", errors.New("dial tcp: i/o timeout"))
		assert.Equal(t, CodeUnknown, be.Code)
		assert.True(t, be.Retryable)
	})

	t.Run("untyped error without a marker is not retryable", func(t *testing.T) {
		be := newBridgeError("proposals.list", errors.New("something odd"))
		assert.Equal(t, CodeUnknown, be.Code)
		assert.False(t, be.Retryable)
	})
}

func TestResultEnvelope(t *testing.T) {
	ok := Ok(42)
	require.True(t, ok.Success)
	assert.Equal(t, 42, ok.Data)
	assert.Nil(t, ok.Error)

	fail := Fail[int](&BridgeError{Code: CodeNotFound, Message: "gone"})
	require.False(t, fail.Success)
	assert.Zero(t, fail.Data)
	require.NotNil(t, fail.Error)
	assert.Equal(t, CodeNotFound, fail.Error.Code)
	assert.Equal(t, "NOT_FOUND: gone", fail.Error.Error())
}
