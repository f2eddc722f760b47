package domain

import "errors"

// Session errors
var (
	ErrMissingToken  = errors.New("missing auth token")
	ErrMissingTenant = errors.New("missing tenant id")
	ErrInvalidScope  = errors.New("invalid tenant scope")
)

// Remote API errors
var (
	ErrNetwork   = errors.New("network error")
	ErrServer    = errors.New("server error")
	ErrMalformed = errors.New("malformed response")
)

// Form errors
var (
	ErrValidation = errors.New("validation failed")
	ErrBusy       = errors.New("submission already in progress")
	ErrClosed     = errors.New("dialog is closed")
)

// ServerError carries the API's message field alongside ErrServer
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return ErrServer.Error()
	}
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return ErrServer
}

// ServerMessage returns the API message carried by err, if any
func ServerMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
