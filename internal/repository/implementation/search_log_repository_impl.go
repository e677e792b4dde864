package implementation

import (
	"context"

	"concept-search-be/internal/entity"
	"concept-search-be/internal/mapper"
	"concept-search-be/internal/model"
	"concept-search-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SearchLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchLogMapper
}

func NewSearchLogRepository(db *gorm.DB) contract.SearchLogRepository {
	return &SearchLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchLogMapper(),
	}
}

func (r *SearchLogRepositoryImpl) Create(ctx context.Context, log *entity.SearchLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *SearchLogRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string, limit int) ([]*entity.SearchLog, error) {
	var models []*model.SearchLog
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("searched_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SearchLogRepositoryImpl) DeleteBySessionID(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.SearchLog{}).Error
}
