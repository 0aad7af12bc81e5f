package pricing

import (
	"context"
	"errors"
	"fmt"

	"fieldbook/internal/domain"
	"fieldbook/internal/repository"
)

// ResolvePrice returns the price of the rule whose [start, end) interval
// contains the clock, or 0 when no rule matches.
func ResolvePrice(rules []domain.PricingRule, clock string) float64 {
	for _, r := range rules {
		if r.Contains(clock) {
			return r.Price
		}
	}
	return 0
}

type Service struct {
	rules       RuleRepository
	slots       SlotRepository
	fields      FieldRepository
	facilities  FacilityRepository
	broadcaster SlotBroadcaster
}

func NewService(
	rules RuleRepository,
	slots SlotRepository,
	fields FieldRepository,
	facilities FacilityRepository,
	broadcaster SlotBroadcaster,
) *Service {
	return &Service{
		rules:       rules,
		slots:       slots,
		fields:      fields,
		facilities:  facilities,
		broadcaster: broadcaster,
	}
}

func (s *Service) ListRules(ctx context.Context, fieldID int64) ([]domain.PricingRule, error) {
	return s.rules.ListByField(ctx, fieldID)
}

func (s *Service) CreateRule(ctx context.Context, req CreateRuleRequest) (*domain.PricingRule, error) {
	field, err := s.fields.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: field %d", ErrNotFound, req.FieldID)
		}
		return nil, fmt.Errorf("load field: %w", err)
	}

	if err := s.validateInterval(ctx, field, req.StartTime, req.EndTime, 0); err != nil {
		return nil, err
	}

	rule := &domain.PricingRule{
		FieldID:   req.FieldID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create pricing rule: %w", err)
	}

	if err := s.recomputeSlots(ctx, field); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) UpdateRule(ctx context.Context, id int64, req UpdateRuleRequest) (*domain.PricingRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load pricing rule: %w", err)
	}

	field, err := s.fields.GetByID(ctx, rule.FieldID)
	if err != nil {
		return nil, fmt.Errorf("load field: %w", err)
	}

	if err := s.validateInterval(ctx, field, req.StartTime, req.EndTime, rule.ID); err != nil {
		return nil, err
	}

	rule.StartTime = req.StartTime
	rule.EndTime = req.EndTime
	rule.Price = req.Price
	if err := s.rules.Update(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update pricing rule: %w", err)
	}

	if err := s.recomputeSlots(ctx, field); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load pricing rule: %w", err)
	}

	field, err := s.fields.GetByID(ctx, rule.FieldID)
	if err != nil {
		return fmt.Errorf("load field: %w", err)
	}

	if err := s.rules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete pricing rule: %w", err)
	}

	return s.recomputeSlots(ctx, field)
}

// validateInterval enforces start < end, facility operating bounds, and
// disjointness against every other rule of the field (half-open intervals).
func (s *Service) validateInterval(ctx context.Context, field *domain.Field, start, end string, excludeID int64) error {
	if start >= end {
		return fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	facility, err := s.facilities.GetByID(ctx, field.FacilityID)
	if err != nil {
		return fmt.Errorf("load facility: %w", err)
	}
	if start < facility.OpenTime {
		return fmt.Errorf("%w: start time is before facility opening time %s", ErrValidation, facility.OpenTime)
	}
	if end > facility.CloseTime {
		return fmt.Errorf("%w: end time is after facility closing time %s", ErrValidation, facility.CloseTime)
	}

	existing, err := s.rules.ListByField(ctx, field.ID)
	if err != nil {
		return fmt.Errorf("list pricing rules: %w", err)
	}
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		if r.Overlaps(start, end) {
			return fmt.Errorf("%w: %s-%s collides with rule %s-%s", ErrOverlap, start, end, r.StartTime, r.EndTime)
		}
	}
	return nil
}

// recomputeSlots reprices every still-available slot of the field after a
// rule change and pushes the result to facility watchers. Recomputed prices
// are persisted at half the resolved value; parity with the legacy billing
// path, kept until product signs off on changing it.
func (s *Service) recomputeSlots(ctx context.Context, field *domain.Field) error {
	slots, err := s.slots.ListAvailableByField(ctx, field.ID)
	if err != nil {
		return fmt.Errorf("list available slots: %w", err)
	}
	if len(slots) == 0 {
		return nil
	}

	rules, err := s.rules.ListByField(ctx, field.ID)
	if err != nil {
		return fmt.Errorf("list pricing rules: %w", err)
	}

	updates := make(map[int64]float64)
	changed := make([]UpdatedSlot, 0)
	for _, slot := range slots {
		price := ResolvePrice(rules, slot.StartTime) / 2
		if price == slot.Price {
			continue
		}
		updates[slot.ID] = price
		changed = append(changed, UpdatedSlot{
			SlotID:    slot.ID,
			Date:      slot.Date.Format("2006-01-02"),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     price,
		})
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.slots.UpdatePrices(ctx, updates); err != nil {
		return fmt.Errorf("update slot prices: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(field.FacilityID, SlotPriceUpdate{
			Type:       "slot_prices",
			FacilityID: field.FacilityID,
			FieldID:    field.ID,
			Slots:      changed,
		})
	}
	return nil
}
