package feed

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// ErrUnexpectedStatus marks an HTTP error status from the upstream
// endpoint. It is never retried.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// IsRetryable reports whether err looks like a transient network
// failure: a timed out or aborted request, a reset or timed out
// connection, or a failed host lookup. Error statuses and malformed
// payloads are not transient and fail the fetch at once.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
