package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Content   string
	Notes     string
	Citations []Citation `gorm:"-"`
	OwnerId   uuid.UUID  `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
