package domain

import (
	"strconv"
	"time"
)

// Status is the lifecycle state of a session, derived from its fields.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

// validTransitions defines the allowed session state machine transitions.
// Staying in the same state is always allowed.
var validTransitions = map[Status][]Status{
	StatusUnauthenticated: {StatusAuthenticating},
	StatusAuthenticating:  {StatusAuthenticated, StatusUnauthenticated},
	StatusAuthenticated:   {StatusUnauthenticated},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the process-wide authentication state. Tokens never leave
// the process through JSON.
type Session struct {
	ID              string    `json:"id,omitempty"`
	AccessToken     string    `json:"-"`
	RefreshToken    string    `json:"-"`
	AccessExpiresAt time.Time `json:"access_expires_at,omitzero"`
	User            *User     `json:"user"`
	IsAuthenticated bool      `json:"is_authenticated"`
	LastActivity    time.Time `json:"last_activity,omitzero"`
	Loading         bool      `json:"loading"`
	Error           string    `json:"error,omitempty"`
}

// NewSession returns the state a process starts in: empty and loading
// until the persisted session has been restored.
func NewSession() Session {
	return Session{Loading: true}
}

// Status derives the state machine position of the session.
func (s Session) Status() Status {
	switch {
	case s.IsAuthenticated:
		return StatusAuthenticated
	case s.Loading:
		return StatusAuthenticating
	default:
		return StatusUnauthenticated
	}
}

// Persisted returns the record mirrored to durable storage.
func (s Session) Persisted() PersistedSession {
	return PersistedSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		LastActivity: s.LastActivity,
	}
}

// Storage keys of the persisted session record.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyLastActivity = "lastActivity"
)

// PersistedSession is the durable mirror of a session. It is the only
// source used to restore state across restarts.
type PersistedSession struct {
	AccessToken  string
	RefreshToken string
	LastActivity time.Time
}

// IsZero reports whether nothing is persisted.
func (p PersistedSession) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == "" && p.LastActivity.IsZero()
}

// FormatActivity encodes an activity instant as an epoch-millisecond string.
func FormatActivity(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseActivity decodes an epoch-millisecond string. Malformed or empty
// values report ok=false.
func ParseActivity(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Fields returns the record as stored string values keyed by KeyToken,
// KeyRefreshToken and KeyLastActivity.
func (p PersistedSession) Fields() map[string]string {
	return map[string]string{
		KeyToken:        p.AccessToken,
		KeyRefreshToken: p.RefreshToken,
		KeyLastActivity: FormatActivity(p.LastActivity),
	}
}

// PersistedFromFields rebuilds a record from stored values. A missing or
// malformed lastActivity is treated as absent.
func PersistedFromFields(fields map[string]string) PersistedSession {
	p := PersistedSession{
		AccessToken:  fields[KeyToken],
		RefreshToken: fields[KeyRefreshToken],
	}
	if at, ok := ParseActivity(fields[KeyLastActivity]); ok {
		p.LastActivity = at
	}
	return p
}
