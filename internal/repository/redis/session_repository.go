package redis

import (
	"context"
	"encoding/json"
	"time"

	"concept-search-be/internal/pkg/logger"
	"concept-search-be/internal/repository/contract"
	"concept-search-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

// NewSessionRepository stores session bags as JSON blobs in redis so
// multiple instances can share them. Redis failures are logged and
// surfaced as a cache miss; the session layer degrades to a fresh
// (empty) session rather than failing the request.
func NewSessionRepository(client *redis.Client, ttl time.Duration, log logger.ILogger) contract.SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (r *SessionRepository) Save(session *store.SessionData) {
	data, err := json.Marshal(session)
	if err != nil {
		r.logger.Error("session", "Failed to marshal session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		r.logger.Warn("session", "Failed to persist session to redis", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.SessionData, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("session", "Failed to load session from redis", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		return nil, false
	}

	var sess store.SessionData
	if err := json.Unmarshal(data, &sess); err != nil {
		r.logger.Warn("session", "Corrupt session payload in redis", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, false
	}
	return &sess, true
}

func (r *SessionRepository) Delete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		r.logger.Warn("session", "Failed to delete session from redis", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}
