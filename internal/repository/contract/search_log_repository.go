package contract

import (
	"context"

	"concept-search-be/internal/entity"
)

type SearchLogRepository interface {
	Create(ctx context.Context, log *entity.SearchLog) error
	FindBySessionID(ctx context.Context, sessionID string, limit int) ([]*entity.SearchLog, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
