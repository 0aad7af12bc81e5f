package repository

import (
	"context"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type FieldRepository struct {
	db *gorm.DB
}

func NewFieldRepository(db *gorm.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

type fieldModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	FacilityID       int64     `gorm:"column:facility_id;index"`
	CategoryID       int64     `gorm:"column:category_id;index"`
	Name             string    `gorm:"column:name"`
	IsBookingEnabled bool      `gorm:"column:is_booking_enabled"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (fieldModel) TableName() string { return "fields" }

func toDomainField(m fieldModel) *domain.Field {
	return &domain.Field{
		ID:               m.ID,
		FacilityID:       m.FacilityID,
		CategoryID:       m.CategoryID,
		Name:             m.Name,
		IsBookingEnabled: m.IsBookingEnabled,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *FieldRepository) Create(ctx context.Context, f *domain.Field) error {
	now := time.Now()
	m := fieldModel{
		FacilityID:       f.FacilityID,
		CategoryID:       f.CategoryID,
		Name:             f.Name,
		IsBookingEnabled: f.IsBookingEnabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*f = *toDomainField(m)
	return nil
}

func (r *FieldRepository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	var m fieldModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainField(m), nil
}

// Find filters fields by facility and/or category; nil means "any".
func (r *FieldRepository) Find(ctx context.Context, facilityID, categoryID *int64) ([]domain.Field, error) {
	q := r.db.WithContext(ctx).Model(&fieldModel{})
	if facilityID != nil {
		q = q.Where("facility_id = ?", *facilityID)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var ms []fieldModel
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Field, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainField(m))
	}
	return out, nil
}
