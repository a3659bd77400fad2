package domain

import (
	"fmt"
	"time"
)

// Event is a closed set of session state changes. Only the types in this
// file implement it.
type Event interface {
	eventName() string
}

// AuthStarted marks the beginning of a credential exchange.
type AuthStarted struct{}

// AuthSucceeded installs a fresh authenticated session.
type AuthSucceeded struct {
	SessionID       string
	User            *User
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
	At              time.Time
}

// AuthFailed ends a credential exchange with a user-facing message. Like a
// failed login in the portal it leaves the session fully logged out.
type AuthFailed struct {
	Message string
}

// LoggedOut clears the session. Used for explicit logout, inactivity
// expiry, and failed refreshes alike.
type LoggedOut struct{}

// ActivityRecorded moves the last-activity instant forward.
type ActivityRecorded struct {
	At time.Time
}

// UserUpdated replaces the profile of the authenticated user.
type UserUpdated struct {
	User *User
}

// TokensRefreshed swaps in a new access token. An empty RefreshToken keeps
// the current one.
type TokensRefreshed struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// LoadingSet toggles the loading flag without touching credentials.
type LoadingSet struct {
	Loading bool
}

// RequestFailed records the message of a failed stateless request
// (password recovery) without touching credentials. KeepLoading leaves the
// loading flag set for a credential exchange still in flight.
type RequestFailed struct {
	Message     string
	KeepLoading bool
}

// ErrorCleared drops the current error message.
type ErrorCleared struct{}

func (AuthStarted) eventName() string      { return "auth_started" }
func (AuthSucceeded) eventName() string    { return "auth_succeeded" }
func (AuthFailed) eventName() string       { return "auth_failed" }
func (LoggedOut) eventName() string        { return "logged_out" }
func (ActivityRecorded) eventName() string { return "activity_recorded" }
func (UserUpdated) eventName() string      { return "user_updated" }
func (TokensRefreshed) eventName() string  { return "tokens_refreshed" }
func (LoadingSet) eventName() string       { return "loading_set" }
func (RequestFailed) eventName() string    { return "request_failed" }
func (ErrorCleared) eventName() string     { return "error_cleared" }

// EventName returns the stable name of an event, used in logs and metrics.
func EventName(e Event) string {
	return e.eventName()
}

// Reduce applies e to s and returns the next session. It performs no I/O.
// When the event is not applicable to s, s is returned unchanged together
// with an error wrapping ErrInvalidTransition, ErrNotAuthenticated or
// ErrIncompleteSession.
func Reduce(s Session, e Event) (Session, error) {
	next := s

	switch ev := e.(type) {
	case AuthStarted:
		next.Loading = true
		next.Error = ""

	case AuthSucceeded:
		if ev.AccessToken == "" || ev.User == nil {
			return s, ErrIncompleteSession
		}
		next = Session{
			ID:              ev.SessionID,
			AccessToken:     ev.AccessToken,
			RefreshToken:    ev.RefreshToken,
			AccessExpiresAt: ev.AccessExpiresAt,
			User:            ev.User,
			IsAuthenticated: true,
			LastActivity:    ev.At,
		}

	case AuthFailed:
		next = Session{Error: ev.Message}

	case LoggedOut:
		next = Session{}

	case ActivityRecorded:
		if !s.IsAuthenticated {
			return s, fmt.Errorf("%s: %w", e.eventName(), ErrNotAuthenticated)
		}
		next.LastActivity = ev.At

	case UserUpdated:
		if !s.IsAuthenticated {
			return s, fmt.Errorf("%s: %w", e.eventName(), ErrNotAuthenticated)
		}
		if ev.User == nil {
			return s, ErrIncompleteSession
		}
		next.User = ev.User
		next.Loading = false

	case TokensRefreshed:
		if !s.IsAuthenticated {
			return s, fmt.Errorf("%s: %w", e.eventName(), ErrNotAuthenticated)
		}
		if ev.AccessToken == "" {
			return s, ErrIncompleteSession
		}
		next.AccessToken = ev.AccessToken
		next.AccessExpiresAt = ev.AccessExpiresAt
		if ev.RefreshToken != "" {
			next.RefreshToken = ev.RefreshToken
		}

	case LoadingSet:
		next.Loading = ev.Loading

	case RequestFailed:
		next.Loading = ev.KeepLoading
		next.Error = ev.Message

	case ErrorCleared:
		next.Error = ""

	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, e)
	}

	from, to := s.Status(), next.Status()
	if !from.CanTransitionTo(to) {
		return s, fmt.Errorf("%w (from %s to %s on %s)", ErrInvalidTransition, from, to, e.eventName())
	}
	return next, nil
}
