package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Sentinel errors for the backend failure classes the UI cares about.
// Match with errors.Is; *Error values unwrap to one of these.
var (
	ErrUnreachable  = errors.New("server unreachable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
)

// Error is a normalized backend error: the HTTP status plus the detail
// message reported by the API, when one was present in the body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unwrap maps the status onto the matching sentinel so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// errorBody matches the API error payload. FastAPI-style backends use
// "detail"; some endpoints use "message".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// normalize converts a non-2xx response into an *Error, extracting the
// backend detail message when the body carries one.
func normalize(status int, body []byte) error {
	var b errorBody
	_ = json.Unmarshal(body, &b)

	detail := b.Detail
	if detail == "" {
		detail = b.Message
	}
	return &Error{Status: status, Detail: detail}
}

// unwrapDoErr maps errors returned by http.Client.Do into the package
// taxonomy. Errors produced by the gateway's refresh path are already
// normalized and surface unchanged; anything else means the server could
// not be reached.
func unwrapDoErr(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		inner := uerr.Err
		var apiErr *Error
		if errors.As(inner, &apiErr) {
			return inner
		}
		if errors.Is(inner, ErrUnreachable) {
			return inner
		}
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// Message renders err as a user-presentable string following the UI copy
// of the web client. Backend detail messages win when present (a failed
// login should say "Invalid email or password", not a generic phrase).
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" && apiErr.Status < 500 {
		return apiErr.Detail
	}

	switch {
	case errors.Is(err, ErrUnreachable):
		return "Unable to reach the server. Please check your internet connection."
	case errors.Is(err, ErrUnauthorized):
		return "Authentication failed. Please login again."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action."
	case errors.Is(err, ErrNotFound):
		return "The requested resource was not found."
	case errors.Is(err, ErrServer):
		return "Server error. Please try again later."
	default:
		return err.Error()
	}
}
