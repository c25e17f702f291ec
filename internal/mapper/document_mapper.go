package mapper

import (
	"encoding/json"
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var citations []entity.Citation
	if len(d.Citations) > 0 {
		// Stored citations are advisory; a malformed column yields an empty list.
		_ = json.Unmarshal(d.Citations, &citations)
	}

	return &entity.Document{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Notes:     d.Notes,
		Citations: citations,
		OwnerId:   d.OwnerId,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var citations datatypes.JSON
	if len(d.Citations) > 0 {
		raw, err := json.Marshal(d.Citations)
		if err == nil {
			citations = datatypes.JSON(raw)
		}
	}

	return &model.Document{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Notes:     d.Notes,
		Citations: citations,
		OwnerId:   d.OwnerId,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
