package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoCredential is returned before any request is made when the client
	// has no bearer token.
	ErrNoCredential = errors.New("no credential, please sign in")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// ValidationError is a structural rejection from the server (HTTP 400 or a
// success=false envelope). Message is the server's text, verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "rejected by server"
	}
	return "rejected by server: " + e.Message
}

// StatusError is any other non-2xx response. It unwraps to ErrUnauthorized,
// ErrForbidden or ErrNotFound for the matching status codes.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// InvalidResponseError indicates a 2xx body that does not match the
// expected shape.
type InvalidResponseError struct {
	Body json.RawMessage
	Err  error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// errorFromResponse maps a non-2xx status and body to a typed error.
func errorFromResponse(code int, body []byte) error {
	msg := envelopeMessage(body)
	if code == http.StatusBadRequest {
		return &ValidationError{Message: msg}
	}
	return &StatusError{Code: code, Message: msg}
}

// envelopeMessage extracts a human-readable message from an error body.
func envelopeMessage(body []byte) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
