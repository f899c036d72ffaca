package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for the upstream catalog service. Handlers translate
// these into the response error kinds.
var (
	// ErrAuth means the credential exchange failed or returned a payload
	// without a usable token.
	ErrAuth = errors.New("catalog: credential exchange failed")
	// ErrUnavailable means the catalog service could not be reached.
	ErrUnavailable = errors.New("catalog: upstream unavailable")
	// ErrTimeout means an outbound call exceeded its deadline.
	ErrTimeout = errors.New("catalog: upstream timeout")
)

// StatusError is returned when the catalog service answers with a
// non-success HTTP status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: upstream returned %d: %s", e.Status, e.Body)
}

// classifyTransport wraps a transport-level failure as either a timeout
// or an unavailability error.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
