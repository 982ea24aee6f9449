package llm

import (
	"context"
	"errors"
	"net"

	"github.com/openai/openai-go"
)

// Client is an interface for invoking LLM models.
// This allows mocking in tests without making real API calls.
type Client interface {
	InvokeModel(ctx context.Context, request Request) (*Response, error)
}

// IsTransient reports whether an invocation error is worth retrying:
// timeouts, rate limits and 5xx-equivalent responses. Credential and
// request-shape errors are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	// Bedrock surfaces HTTP status through smithy response errors.
	var httpErr interface{ HTTPStatusCode() int }
	if errors.As(err, &httpErr) {
		code := httpErr.HTTPStatusCode()
		return code == 429 || code >= 500
	}

	return false
}
