package bridge

import (
	"errors"
	"strings"
	"time"
)

// Error codes carried by bridge envelopes
const (
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeNetworkError     = "NETWORK_ERROR"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeUnknown          = "UNKNOWN_ERROR"
)

// BridgeError is the uniform failure payload returned by every bridge
// operation. It is always returned as data, never raised: callers branch
// on Result.Success rather than recovering from panics or unwrapping
// error chains.
type BridgeError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
	Retryable bool      `json:"retryable"`
}

// Error implements the error interface
func (e *BridgeError) Error() string {
	return e.Code + ": " + e.Message
}

// Result is the envelope returned by every bridge operation.
type Result[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *BridgeError `json:"error,omitempty"`
}

// Ok wraps a successful value in an envelope
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps a BridgeError in an envelope
func Fail[T any](err *BridgeError) Result[T] {
	return Result[T]{Success: false, Error: err}
}

// newBridgeError converts any error produced during an operation into a
// BridgeError. Typed transport and API errors carry their own code and
// retryability; everything else falls through to the message heuristic.
func newBridgeError(operation string, err error) *BridgeError {
	be := &BridgeError{
		Code:      CodeUnknown,
		Message:   err.Error(),
		Operation: operation,
		Timestamp: time.Now(),
	}

	var transportErr *TransportError
	var apiErr *APIError
	switch {
	case errors.As(err, &transportErr):
		be.Code = CodeNetworkError
		be.Retryable = transportErr.Retryable
	case errors.As(err, &apiErr):
		be.Code = mapAPIErrorCode(apiErr.Code)
		be.Retryable = apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	default:
		be.Retryable = retryableFromMessage(err.Error())
	}
	return be
}

func mapAPIErrorCode(code string) string {
	switch code {
	case "ERR_NOT_FOUND", "NOT_FOUND":
		return CodeNotFound
	case "ERR_FORBIDDEN", "FORBIDDEN", "ERR_UNAUTHORIZED", "UNAUTHORIZED":
		return CodePermissionDenied
	case "ERR_VALIDATION", "ERR_INVALID_INPUT", "ERR_BAD_REQUEST":
		return CodeValidationError
	case "":
		return CodeUnknown
	}
	return code
}

// retryableFromMessage is the legacy classifier for errors that carry no
// typed retryability. Substring matching is coarse; the transport client
// sets the flag itself on every error it produces, so this only runs for
// foreign errors.
func retryableFromMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{"timeout", "network", "500", "503"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
