package mapper

import (
	"time"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/model"

	"gorm.io/gorm"
)

type RetrievalEntryMapper struct{}

func NewRetrievalEntryMapper() *RetrievalEntryMapper {
	return &RetrievalEntryMapper{}
}

func (m *RetrievalEntryMapper) ToEntity(r *model.RetrievalEntry) *entity.RetrievalEntry {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.RetrievalEntry{
		Id:        r.Id,
		OwnerId:   r.OwnerId,
		Kind:      entity.RetrievalEntryKind(r.Kind),
		Name:      r.Name,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: r.DeletedAt.Valid,
	}
}

func (m *RetrievalEntryMapper) ToModel(r *entity.RetrievalEntry) *model.RetrievalEntry {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.RetrievalEntry{
		Id:        r.Id,
		OwnerId:   r.OwnerId,
		Kind:      string(r.Kind),
		Name:      r.Name,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *RetrievalEntryMapper) ToEntities(entries []*model.RetrievalEntry) []*entity.RetrievalEntry {
	entities := make([]*entity.RetrievalEntry, len(entries))
	for i, r := range entries {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
