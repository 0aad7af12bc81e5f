package pricing

import (
	"context"

	"fieldbook/internal/domain"
)

type RuleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PricingRule, error)
	ListByField(ctx context.Context, fieldID int64) ([]domain.PricingRule, error)
	Create(ctx context.Context, rule *domain.PricingRule) error
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id int64) error
}

type SlotRepository interface {
	ListAvailableByField(ctx context.Context, fieldID int64) ([]domain.Slot, error)
	UpdatePrices(ctx context.Context, prices map[int64]float64) error
}

type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// SlotBroadcaster pushes recomputed slot prices to facility watchers.
// Delivery failures are not part of the transactional guarantee.
type SlotBroadcaster interface {
	Broadcast(facilityID int64, message interface{}) int
}
