package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

const (
	sessionCollection = "portal_sessions"
	defaultNamespace  = "portal"
)

// SessionStore keeps the persisted session as one document per namespace,
// so the three keys are always written and removed together.
type SessionStore struct {
	coll      *mongo.Collection
	namespace string
}

func NewSessionStore(db *mongo.Database, namespace string) *SessionStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &SessionStore{coll: db.Collection(sessionCollection), namespace: namespace}
}

type sessionDoc struct {
	ID           string `bson:"_id"`
	Token        string `bson:"token,omitempty"`
	RefreshToken string `bson:"refreshToken,omitempty"`
	LastActivity string `bson:"lastActivity,omitempty"`
}

func toDoc(namespace string, p domain.PersistedSession) sessionDoc {
	fields := p.Fields()
	return sessionDoc{
		ID:           namespace,
		Token:        fields[domain.KeyToken],
		RefreshToken: fields[domain.KeyRefreshToken],
		LastActivity: fields[domain.KeyLastActivity],
	}
}

func (d sessionDoc) toDomain() domain.PersistedSession {
	return domain.PersistedFromFields(map[string]string{
		domain.KeyToken:        d.Token,
		domain.KeyRefreshToken: d.RefreshToken,
		domain.KeyLastActivity: d.LastActivity,
	})
}

func (s *SessionStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.namespace}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PersistedSession{}, nil
	}
	if err != nil {
		return domain.PersistedSession{}, fmt.Errorf("find session: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *SessionStore) Save(ctx context.Context, p domain.PersistedSession) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.namespace}, toDoc(s.namespace, p), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// SaveActivity only updates an existing document.
func (s *SessionStore) SaveActivity(ctx context.Context, at time.Time) error {
	update := bson.M{"$set": bson.M{domain.KeyLastActivity: domain.FormatActivity(at)}}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": s.namespace}, update); err != nil {
		return fmt.Errorf("update session activity: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.namespace}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
