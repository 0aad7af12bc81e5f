package schedule

import (
	"context"
	"time"

	"fieldbook/internal/domain"
)

type SlotRepository interface {
	ListByFieldBetween(ctx context.Context, fieldID int64, from, to time.Time) ([]domain.Slot, error)
	BulkCreate(ctx context.Context, slots []domain.Slot) error
}

type RuleRepository interface {
	ListByField(ctx context.Context, fieldID int64) ([]domain.PricingRule, error)
}

type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}
