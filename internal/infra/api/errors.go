package api

import (
	"errors"
	"fmt"
)

// Kind is the closed set of transport failure classes. Fallback
// decisions match on Kind structurally, never on message text.
type Kind int

const (
	// KindTimeout means the per-call deadline elapsed before a response arrived.
	KindTimeout Kind = iota

	// KindNetworkUnreachable covers connection refused, DNS failure and
	// other transport-level errors where no server answered.
	KindNetworkUnreachable

	// KindServerRejected means a reachable server answered with a
	// non-success status. The rejection is authoritative.
	KindServerRejected

	// KindUnknown covers everything else (malformed payloads, bugs).
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindServerRejected:
		return "server_rejected"
	default:
		return "unknown"
	}
}

// Error is the classified failure returned by Client. Status and
// Message are set only for KindServerRejected.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServerRejected:
		return e.Message
	case KindTimeout:
		return fmt.Sprintf("request timed out: %v", e.cause)
	case KindNetworkUnreachable:
		return fmt.Sprintf("network unreachable: %v", e.cause)
	default:
		if e.cause != nil {
			return fmt.Sprintf("request failed: %v", e.cause)
		}
		if e.Message != "" {
			return e.Message
		}
		return "request failed"
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Classify reduces any error to a Kind. It is pure and total: nil and
// foreign errors map to KindUnknown.
func Classify(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// Rejection extracts the server's own error detail when err is a
// KindServerRejected failure. ok is false for every other error.
func Rejection(err error) (status int, message string, ok bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServerRejected {
		return apiErr.Status, apiErr.Message, true
	}
	return 0, "", false
}
