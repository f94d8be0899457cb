package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindServer     ErrorKind = "server"
)

// APIError is a failure at the storefront API boundary, classified so
// callers can branch without sniffing message text. Message is always safe
// to show to the user.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("storefront api: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("storefront api: %s (%d): %s", e.Kind, e.Status, e.Message)
}

// IsKind reports whether err wraps an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func netError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "Could not reach the store. Please check your connection and try again.",
		cause:   err,
	}
}

// classifyStatus maps a non-2xx response to an APIError, preferring a
// backend-supplied message when the body carries one.
func classifyStatus(status int, body []byte) *APIError {
	msg := backendMessage(body)

	switch {
	case status == 400:
		if msg == "" {
			msg = "Invalid request. Please check your input and try again."
		}
		return &APIError{Kind: KindValidation, Status: status, Message: msg}
	case status == 401:
		return &APIError{Kind: KindAuth, Status: status, Message: "You need to be logged in. Please log in and try again."}
	case status == 403:
		return &APIError{Kind: KindForbidden, Status: status, Message: "You do not have permission to perform this action."}
	case status == 404:
		if msg == "" {
			msg = "Not found. Please try again later."
		}
		return &APIError{Kind: KindNotFound, Status: status, Message: msg}
	case status == 409:
		if msg == "" {
			msg = "Some items in your cart are out of stock."
		}
		return &APIError{Kind: KindConflict, Status: status, Message: msg}
	case status >= 500:
		return &APIError{Kind: KindServer, Status: status, Message: "Server error. Please try again later."}
	default:
		if msg == "" {
			msg = fmt.Sprintf("Unexpected error (%d). Please try again.", status)
		}
		return &APIError{Kind: KindServer, Status: status, Message: msg}
	}
}

func backendMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain
	}
	return ""
}
