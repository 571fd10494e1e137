package translation

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for work submitted after Client.Close.
var ErrClosed = errors.New("translation client is closed")

// NetworkError reports that the remote service could not be reached.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("translation request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response that does not match the /translate
// contract. Field names the offending JSON field, or "body"/"status" when
// the response could not be inspected field by field.
type ProtocolError struct {
	Field  string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("invalid translation response: %s: %s", e.Field, e.Reason)
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsProtocolError reports whether err is or wraps a *ProtocolError.
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}
