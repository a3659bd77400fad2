package ports

import (
	"context"
	"time"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// SessionStore is the durable key-value mirror of the session. Only the
// session controller writes to it.
type SessionStore interface {
	// Load returns the persisted record. A missing record is the zero value,
	// not an error.
	Load(ctx context.Context) (domain.PersistedSession, error)
	// Save writes token, refreshToken and lastActivity together.
	Save(ctx context.Context, s domain.PersistedSession) error
	// SaveActivity overwrites lastActivity only.
	SaveActivity(ctx context.Context, at time.Time) error
	// Clear removes all three keys together.
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
