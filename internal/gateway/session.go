// internal/gateway/session.go
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an idle conversation keeps its session ID.
const sessionTTL = 24 * time.Hour

// NewSessionID returns a fresh runtime session identifier. The agent runtime
// requires session IDs of at least 33 characters, which the prefixed UUID
// always satisfies.
func NewSessionID() string {
	return "retention-" + uuid.NewString()
}

// SessionStore keeps the latest runtime session ID per authenticated actor so
// consecutive chat turns land in the same conversation.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(actorID string) string {
	return fmt.Sprintf("chat:session:%s", actorID)
}

// Resume returns the actor's current session ID, or a new one when none
// exists. The returned ID is persisted with a refreshed TTL either way.
func (s *SessionStore) Resume(ctx context.Context, actorID string) (string, error) {
	key := sessionKey(actorID)

	sessionID, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		sessionID = NewSessionID()
	} else if err != nil {
		return "", fmt.Errorf("load session for actor: %w", err)
	}

	if err := s.client.Set(ctx, key, sessionID, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("persist session for actor: %w", err)
	}

	return sessionID, nil
}

// Reset discards the actor's current session so the next turn starts a new
// conversation.
func (s *SessionStore) Reset(ctx context.Context, actorID string) error {
	return s.client.Del(ctx, sessionKey(actorID)).Err()
}
