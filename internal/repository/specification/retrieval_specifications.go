package specification

import (
	"gorm.io/gorm"
)

// ByKind filters retrieval entries by their kind column (template / text_block).
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// ByName matches the exact stored name. Lookups are case-sensitive on purpose:
// command tokens reference entries by their literal name.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
