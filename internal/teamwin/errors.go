package teamwin

import (
	"errors"
	"fmt"
)

// NetworkErrorMessage is shown when the service could not be reached at all.
const NetworkErrorMessage = "Network error. Is your API running?"

// RequestError captures a non-2xx (or unreadable) response from the service.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericRequestMessage(e.StatusCode)
}

// GenericRequestMessage is the fallback when the service sent no error text.
func GenericRequestMessage(status int) string {
	return fmt.Sprintf("Request failed (%d)", status)
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return NetworkErrorMessage
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsRequestError attempts to unwrap an error into a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}
