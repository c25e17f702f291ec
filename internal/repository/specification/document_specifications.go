package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentID filters embedding rows by their parent document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByTitle matches a document title exactly.
type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}

// TitleOrContentLike is the literal-search fallback over documents.
type TitleOrContentLike struct {
	Query string
}

func (s TitleOrContentLike) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
