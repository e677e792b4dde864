package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SearchLog struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionID  string         `gorm:"type:varchar(64);not null;index"`
	Query      string         `gorm:"type:text;not null"`
	Tokens     datatypes.JSON `gorm:"type:jsonb"`
	TokenCount int            `gorm:"not null"`
	SearchedAt time.Time      `gorm:"default:now();not null;index"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}
