package repository

import (
	"context"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type FacilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

type facilityModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	Phone     string    `gorm:"column:phone"`
	OpenTime  string    `gorm:"column:open_time"`
	CloseTime string    `gorm:"column:close_time"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (facilityModel) TableName() string { return "facilities" }

func toDomainFacility(m facilityModel) *domain.Facility {
	return &domain.Facility{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		OpenTime:  m.OpenTime,
		CloseTime: m.CloseTime,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *FacilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	now := time.Now()
	m := facilityModel{
		Name:      f.Name,
		Address:   f.Address,
		Phone:     f.Phone,
		OpenTime:  f.OpenTime,
		CloseTime: f.CloseTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*f = *toDomainFacility(m)
	return nil
}

func (r *FacilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	var m facilityModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainFacility(m), nil
}

func (r *FacilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	var ms []facilityModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Facility, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainFacility(m))
	}
	return out, nil
}
