package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

const defaultNamespace = "portal:session"

// SessionStore persists the session as three plain keys.
// Key format: <namespace>:token, <namespace>:refreshToken, <namespace>:lastActivity
type SessionStore struct {
	client    *redis.Client
	namespace string
}

// NewSessionStore wraps client. An empty namespace uses "portal:session".
func NewSessionStore(client *redis.Client, namespace string) *SessionStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &SessionStore{client: client, namespace: namespace}
}

func (s *SessionStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	keys := s.keys()
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return domain.PersistedSession{}, fmt.Errorf("load session: %w", err)
	}

	fields := make(map[string]string, len(vals))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			fields[storedKeys[i]] = str
		}
	}
	return domain.PersistedFromFields(fields), nil
}

// Save writes all three keys in one MULTI/EXEC block. Empty values delete
// their key.
func (s *SessionStore) Save(ctx context.Context, p domain.PersistedSession) error {
	fields := p.Fields()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range storedKeys {
			if v := fields[k]; v != "" {
				pipe.Set(ctx, s.key(k), v, 0)
			} else {
				pipe.Del(ctx, s.key(k))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SaveActivity overwrites lastActivity only while a token is stored, so a
// late write cannot resurrect a cleared record.
func (s *SessionStore) SaveActivity(ctx context.Context, at time.Time) error {
	keys := []string{s.key(domain.KeyToken), s.key(domain.KeyLastActivity)}
	err := touchActivity.Run(ctx, s.client, keys, domain.FormatActivity(at)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.keys()...).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// touchActivity sets KEYS[2] to ARGV[1] only when KEYS[1] exists.
var touchActivity = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("SET", KEYS[2], ARGV[1])
end
return false
`)

var storedKeys = []string{domain.KeyToken, domain.KeyRefreshToken, domain.KeyLastActivity}

func (s *SessionStore) key(name string) string {
	return s.namespace + ":" + name
}

func (s *SessionStore) keys() []string {
	out := make([]string, len(storedKeys))
	for i, k := range storedKeys {
		out[i] = s.key(k)
	}
	return out
}
