// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crm-service/internal/domain/identity"

	"github.com/redis/go-redis/v9"
)

// Manager keeps session state in Redis. It also persists the auth-mode
// flag ("guest" vs "user") per device, the server-side counterpart of the
// original client's persisted mode switch: it survives reconnects and is
// read before the first authenticated request of a session.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// CreateSession stores a new session in Redis for the lifetime of its token.
func (m *Manager) CreateSession(ctx context.Context, session *SessionData) error {
	key := m.sessionKey(session.IdentityKey, session.JTI)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}

	return nil
}

// GetSession retrieves a session from Redis.
func (m *Manager) GetSession(ctx context.Context, identityKey, jti string) (*SessionData, error) {
	key := m.sessionKey(identityKey, jti)

	data, err := m.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// InvalidateSession removes one session.
func (m *Manager) InvalidateSession(ctx context.Context, identityKey, jti string) error {
	return m.client.Del(ctx, m.sessionKey(identityKey, jti)).Err()
}

// InvalidateAllSessions removes every session of an identity.
func (m *Manager) InvalidateAllSessions(ctx context.Context, identityKey string) error {
	pattern := fmt.Sprintf("session:%s:*", identityKey)

	iter := m.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := m.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// SetAuthMode persists the guest/user mode flag for a device.
func (m *Manager) SetAuthMode(ctx context.Context, deviceID string, mode identity.Mode) error {
	key := m.authModeKey(deviceID)
	return m.client.Set(ctx, key, string(mode), 30*24*time.Hour).Err()
}

// GetAuthMode reads the persisted mode flag. A missing flag defaults to
// guest, matching a fresh session.
func (m *Manager) GetAuthMode(ctx context.Context, deviceID string) (identity.Mode, error) {
	val, err := m.client.Get(ctx, m.authModeKey(deviceID)).Result()
	if err == redis.Nil {
		return identity.ModeGuest, nil
	}
	if err != nil {
		return identity.ModeGuest, fmt.Errorf("failed to load auth mode: %w", err)
	}

	if identity.Mode(val) == identity.ModeUser {
		return identity.ModeUser, nil
	}
	return identity.ModeGuest, nil
}

func (m *Manager) sessionKey(identityKey, jti string) string {
	return fmt.Sprintf("session:%s:%s", identityKey, jti)
}

func (m *Manager) authModeKey(deviceID string) string {
	return fmt.Sprintf("authmode:%s", deviceID)
}
