package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a provider failure. Every kind is retryable on the
// next provider in the chain; none is retryable on the same provider within
// a request.
type ErrorKind string

const (
	// KindNotConfigured means the provider has no credentials or is disabled.
	KindNotConfigured ErrorKind = "not_configured"
	// KindRateLimited means the provider returned HTTP 429.
	KindRateLimited ErrorKind = "rate_limited"
	// KindTimeout means the call exceeded the provider's deadline.
	KindTimeout ErrorKind = "timeout"
	// KindInvalidResponse means the provider answered but the payload could
	// not be used (bad JSON, missing fields, empty completion).
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindTransport covers connection failures and non-429 HTTP errors.
	KindTransport ErrorKind = "transport_error"
)

// Error is a failure attributed to one provider attempt.
type Error struct {
	Provider string
	Kind     ErrorKind
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// notConfigured is the error every client returns when called without
// credentials.
func notConfigured(name string) *Error {
	return &Error{Provider: name, Kind: KindNotConfigured, Detail: "no API key configured"}
}

// statusError classifies a non-2xx HTTP response.
func statusError(name string, status int, body string) *Error {
	kind := KindTransport
	if status == 429 {
		kind = KindRateLimited
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return &Error{Provider: name, Kind: kind, Detail: fmt.Sprintf("HTTP %d: %s", status, body)}
}

// transportError classifies a failed round trip, distinguishing deadline
// expiry from plain connection failures.
func transportError(name string, err error) *Error {
	kind := KindTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &Error{Provider: name, Kind: kind, Detail: "request failed", Err: err}
}

// invalidResponse wraps a decode failure.
func invalidResponse(name, detail string, err error) *Error {
	return &Error{Provider: name, Kind: KindInvalidResponse, Detail: detail, Err: err}
}
