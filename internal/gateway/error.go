package gateway

import (
	"errors"
	"fmt"
)

// APIError is the normalized failure returned for any non-2xx response.
// Message is already user-facing; Code carries the service's machine
// code when one was present in the body; Status is the HTTP status.
// Callers branch on Status rather than parsing the message.
type APIError struct {
	Message string
	Code    string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (code=%s, status=%d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status=%d)", e.Message, e.Status)
}

// AsAPIError unwraps err into an *APIError when the failure came from a
// service response.  Transport failures (connection refused, bad JSON)
// are not APIErrors and yield nil, false.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is a service response with the given
// HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

// User-facing messages substituted for specific status classes.  The
// generic message covers unparsable bodies and unclassified statuses.
const (
	MsgGeneric      = "An unexpected error occurred."
	MsgSessionGone  = "Session expired. Please sign in again."
	MsgAccessDenied = "Access denied. You do not have the required permissions."
	MsgNotFound     = "Resource not found."
	MsgServerError  = "Server error. Please try again later."
)
