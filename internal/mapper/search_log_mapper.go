package mapper

import (
	"encoding/json"

	"concept-search-be/internal/entity"
	"concept-search-be/internal/model"

	"gorm.io/datatypes"
)

type SearchLogMapper struct{}

func NewSearchLogMapper() *SearchLogMapper {
	return &SearchLogMapper{}
}

func (m *SearchLogMapper) ToEntity(l *model.SearchLog) *entity.SearchLog {
	if l == nil {
		return nil
	}

	// A row with an unreadable token snapshot still yields the query and
	// counts; the snapshot is auxiliary display data.
	var tokens []entity.SearchToken
	if len(l.Tokens) > 0 {
		_ = json.Unmarshal(l.Tokens, &tokens)
	}

	return &entity.SearchLog{
		Id:         l.Id,
		SessionID:  l.SessionID,
		Query:      l.Query,
		Tokens:     tokens,
		TokenCount: l.TokenCount,
		SearchedAt: l.SearchedAt,
	}
}

func (m *SearchLogMapper) ToEntities(models []*model.SearchLog) []*entity.SearchLog {
	entities := make([]*entity.SearchLog, 0, len(models))
	for _, l := range models {
		entities = append(entities, m.ToEntity(l))
	}
	return entities
}

func (m *SearchLogMapper) ToModel(l *entity.SearchLog) *model.SearchLog {
	if l == nil {
		return nil
	}

	tokens := l.Tokens
	if tokens == nil {
		tokens = []entity.SearchToken{}
	}
	raw, _ := json.Marshal(tokens)

	return &model.SearchLog{
		Id:         l.Id,
		SessionID:  l.SessionID,
		Query:      l.Query,
		Tokens:     datatypes.JSON(raw),
		TokenCount: l.TokenCount,
		SearchedAt: l.SearchedAt,
	}
}
