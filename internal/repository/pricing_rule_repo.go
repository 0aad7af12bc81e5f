package repository

import (
	"context"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type PricingRuleRepository struct {
	db *gorm.DB
}

func NewPricingRuleRepository(db *gorm.DB) *PricingRuleRepository {
	return &PricingRuleRepository{db: db}
}

type pricingRuleModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	FieldID   int64     `gorm:"column:field_id;index"`
	StartTime string    `gorm:"column:start_time"`
	EndTime   string    `gorm:"column:end_time"`
	Price     float64   `gorm:"column:price"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (pricingRuleModel) TableName() string { return "pricing_rules" }

func toDomainRule(m pricingRuleModel) *domain.PricingRule {
	return &domain.PricingRule{
		ID:        m.ID,
		FieldID:   m.FieldID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toRuleModel(r *domain.PricingRule) pricingRuleModel {
	return pricingRuleModel{
		ID:        r.ID,
		FieldID:   r.FieldID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *PricingRuleRepository) GetByID(ctx context.Context, id int64) (*domain.PricingRule, error) {
	var m pricingRuleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRule(m), nil
}

func (r *PricingRuleRepository) ListByField(ctx context.Context, fieldID int64) ([]domain.PricingRule, error) {
	var ms []pricingRuleModel
	err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.PricingRule, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRule(m))
	}
	return out, nil
}

func (r *PricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	m := toRuleModel(rule)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*rule = *toDomainRule(m)
	return nil
}

func (r *PricingRuleRepository) Update(ctx context.Context, rule *domain.PricingRule) error {
	res := r.db.WithContext(ctx).Model(&pricingRuleModel{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"start_time": rule.StartTime,
			"end_time":   rule.EndTime,
			"price":      rule.Price,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PricingRuleRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&pricingRuleModel{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
