package contract

import "concept-search-be/pkg/store"

// SessionRepository persists per-user session bags between requests.
// Backends: in-memory cache (single instance) or redis (shared).
type SessionRepository interface {
	Save(session *store.SessionData)
	Get(sessionID string) (*store.SessionData, bool)
	Delete(sessionID string)
}
