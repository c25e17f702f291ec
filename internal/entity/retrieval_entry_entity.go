package entity

import (
	"time"

	"github.com/google/uuid"
)

// RetrievalEntryKind distinguishes full document templates from
// splice-in text blocks. The pair shares one storage shape.
type RetrievalEntryKind string

const (
	RetrievalKindTemplate  RetrievalEntryKind = "template"
	RetrievalKindTextBlock RetrievalEntryKind = "text_block"
)

type RetrievalEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerId   uuid.UUID `gorm:"type:uuid;index"`
	Kind      RetrievalEntryKind
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
