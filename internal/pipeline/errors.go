package pipeline

import (
	"errors"
	"fmt"
	"net"

	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// TransportError is a name resolution or connectivity failure reaching the
// remote endpoint. The original error is kept as the cause.
type TransportError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: unable to reach %s, check the region and endpoint settings and network connectivity: %v",
		e.Operation, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err indicates the request never reached the
// service: DNS failures, refused or reset connections, and SDK send errors.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// A bare *url.Error also covers malformed endpoints, so it only counts
	// through the network error it wraps.
	var sendErr *smithyhttp.RequestSendError
	return errors.As(err, &sendErr)
}

// Classify rewraps transport failures with an endpoint specific message and
// returns every other error unchanged.
func Classify(op string, settings Settings, err error) error {
	if err == nil {
		return nil
	}

	var already *TransportError
	if errors.As(err, &already) {
		return err
	}

	if !IsTransport(err) {
		return err
	}

	return &TransportError{
		Operation: op,
		Endpoint:  settings.Target(),
		Err:       err,
	}
}

// PanicError is a panic recovered while building the context or request.
type PanicError struct {
	Operation string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: unexpected failure: %v", e.Operation, e.Value)
}
