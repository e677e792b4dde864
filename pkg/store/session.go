package store

// Session is the opaque per-user key-value surface the token store
// operates on. The host environment (middleware + repository) owns
// creation, synchronization and persistence; consumers only read and
// write string values under string keys.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// SessionData is the concrete session value bag held by the session
// repositories. One instance is scoped to a single request/response
// cycle; concurrent requests on the same session id are last-write-wins.
type SessionData struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`
}

func NewSessionData(id string) *SessionData {
	return &SessionData{
		ID:     id,
		Values: make(map[string]string),
	}
}

func (s *SessionData) Get(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

func (s *SessionData) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
}
