package implementation

import (
	"context"
	"errors"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/mapper"
	"github.com/besmartbusiness/lawyer-app/internal/model"
	"github.com/besmartbusiness/lawyer-app/internal/repository/contract"
	"github.com/besmartbusiness/lawyer-app/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetrievalEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetrievalEntryMapper
}

func NewRetrievalEntryRepository(db *gorm.DB) contract.RetrievalEntryRepository {
	return &RetrievalEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetrievalEntryMapper(),
	}
}

func (r *RetrievalEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RetrievalEntryRepositoryImpl) Create(ctx context.Context, entry *entity.RetrievalEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *RetrievalEntryRepositoryImpl) Update(ctx context.Context, entry *entity.RetrievalEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *RetrievalEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RetrievalEntry{}, id).Error
}

func (r *RetrievalEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RetrievalEntry, error) {
	var m model.RetrievalEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RetrievalEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalEntry, error) {
	var models []*model.RetrievalEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RetrievalEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.RetrievalEntry{}).Count(&count).Error
	return count, err
}
