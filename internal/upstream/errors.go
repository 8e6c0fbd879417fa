package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a collaborator call failed.
type Kind int

const (
	Failed Kind = iota
	Disabled
	Misconfigured
	RateLimited
)

func (k Kind) String() string {
	switch k {
	case Disabled:
		return "disabled"
	case Misconfigured:
		return "misconfigured"
	case RateLimited:
		return "rate_limited"
	default:
		return "upstream_error"
	}
}

// Error wraps a failed call to an external service. Status is the upstream
// HTTP status when one was received.
type Error struct {
	Service string
	Kind    Kind
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s (%d): %v", e.Service, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(service string, kind Kind, err error) *Error {
	return &Error{Service: service, Kind: kind, Err: err}
}

// FromStatus classifies a non-2xx response.
func FromStatus(service string, status int, body []byte) *Error {
	kind := Failed
	if status == http.StatusTooManyRequests {
		kind = RateLimited
	}
	msg := string(body)
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return &Error{Service: service, Kind: kind, Status: status, Err: errors.New(msg)}
}

// HTTPStatus picks the status a handler should answer with.
func HTTPStatus(err error) int {
	var ue *Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError
	}
	switch ue.Kind {
	case Disabled:
		return http.StatusServiceUnavailable
	case Misconfigured:
		return http.StatusInternalServerError
	case RateLimited:
		return http.StatusTooManyRequests
	}
	if ue.Status >= 400 && ue.Status < 500 {
		return ue.Status
	}
	return http.StatusBadGateway
}

// KindOf returns the error's kind, or Failed for foreign errors.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return Failed
}
