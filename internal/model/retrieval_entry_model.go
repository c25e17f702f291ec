package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetrievalEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_retrieval_lookup"`
	Kind      string         `gorm:"type:varchar(32);not null;index:idx_retrieval_lookup"`
	Name      string         `gorm:"type:varchar(255);not null;index:idx_retrieval_lookup"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RetrievalEntry) TableName() string {
	return "retrieval_entries"
}
