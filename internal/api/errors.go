package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse marks a body that was not valid JSON, whatever the
// status code. Kept distinct from connectivity failures per the storefront's
// error taxonomy.
var ErrMalformedResponse = errors.New("malformed server response")

// Error is a rejection the backend expressed itself, carrying the verbatim
// message from its {"message": ...} body when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401/403 rejection.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// UserMessage converts any transport error into the string a user should see.
// Server-sent messages pass through verbatim; everything else degrades to a
// generic class.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, ErrMalformedResponse) {
		return "server error, please try again"
	}
	return "network error, please check your connection"
}
