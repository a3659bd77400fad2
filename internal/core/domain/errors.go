package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNotAuthenticated  = errors.New("session not authenticated")
	ErrIncompleteSession = errors.New("authenticated session requires access token and user")
	ErrSessionChanged    = errors.New("session changed while request was in flight")
	ErrNoResponse        = errors.New("no response from backend")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidInput      = errors.New("invalid input")
)

// APIError is a response received from the backend with a non-2xx status.
// The backend reports failures as {"detail": ...} where detail is either a
// string or an object carrying a message and a list of requirements.
type APIError struct {
	Status        int
	Detail        string
	DetailMessage string
	Requirements  []string
}

func (e *APIError) Error() string {
	if text := e.Text(); text != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, text)
	}
	return fmt.Sprintf("backend responded %d", e.Status)
}

// Text returns the human-readable part of the detail payload, if any.
func (e *APIError) Text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.DetailMessage
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}
