package api

import "errors"

// ErrNetwork wraps transport-level failures (unreachable host, timeout,
// malformed response body). Callers show these as a generic network
// error rather than the raw cause.
var ErrNetwork = errors.New("network error")

// ServerError carries the service's own {error} message for a non-2xx
// response. The message is shown to the user verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// AsServerError unwraps err into a ServerError if there is one.
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr, true
	}
	return nil, false
}
