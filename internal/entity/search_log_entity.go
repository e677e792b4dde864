package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records one executed search: which session ran it, the
// compiled query that was sent downstream and the token snapshot it was
// compiled from.
type SearchLog struct {
	Id         uuid.UUID
	SessionID  string
	Query      string
	Tokens     []SearchToken
	TokenCount int
	SearchedAt time.Time
}
