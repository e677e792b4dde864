package memory

import (
	"time"

	"concept-search-be/internal/repository/contract"
	"concept-search-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps session bags in process memory. Expired
// sessions are purged every 10 minutes; the TTL comes from config so
// memory and redis backends age sessions identically.
func NewSessionRepository(ttl time.Duration) contract.SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.SessionData) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.SessionData, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.SessionData), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
