package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrTransport indicates the request never produced an HTTP response:
// DNS, connection, TLS, or a cancelled/expired context.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("LLM transport error: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrService indicates the provider answered with a non-success status.
type ErrService struct {
	StatusCode int
	Err        error
}

func (e *ErrService) Error() string {
	return fmt.Sprintf("LLM service error (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrService) Unwrap() error { return e.Err }

// Retryable reports whether the status is worth another attempt.
func (e *ErrService) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 408
}

// ErrRateLimit is the 429 case of a service error.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the reply is not JSON or does not conform
// to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the reply was cut off at MaxTokens and
// did not validate.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
