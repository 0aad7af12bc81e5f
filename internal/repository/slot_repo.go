package repository

import (
	"context"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type slotModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	FieldID   int64     `gorm:"column:field_id;uniqueIndex:idx_slot_identity"`
	Date      time.Time `gorm:"column:date;uniqueIndex:idx_slot_identity"`
	StartTime string    `gorm:"column:start_time;uniqueIndex:idx_slot_identity"`
	EndTime   string    `gorm:"column:end_time;uniqueIndex:idx_slot_identity"`
	Price     float64   `gorm:"column:price"`
	Status    string    `gorm:"column:status;index"`
	BookingID *int64    `gorm:"column:booking_id;index"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotModel) TableName() string { return "slots" }

func toDomainSlot(m slotModel) *domain.Slot {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	return &domain.Slot{
		ID:        m.ID,
		FieldID:   m.FieldID,
		Date:      m.Date,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Price:     m.Price,
		Status:    domain.SlotStatus(m.Status),
		BookingID: m.BookingID,
		Notes:     notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toSlotModel(s *domain.Slot) slotModel {
	var notes *string
	if s.Notes != "" {
		v := s.Notes
		notes = &v
	}
	return slotModel{
		ID:        s.ID,
		FieldID:   s.FieldID,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Price:     s.Price,
		Status:    string(s.Status),
		BookingID: s.BookingID,
		Notes:     notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func slotsToDomain(ms []slotModel) []domain.Slot {
	out := make([]domain.Slot, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainSlot(m))
	}
	return out
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	var m slotModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainSlot(m), nil
}

// ListByFieldBetween returns every slot of a field with date in [from, to].
func (r *SlotRepository) ListByFieldBetween(ctx context.Context, fieldID int64, from, to time.Time) ([]domain.Slot, error) {
	var ms []slotModel
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND date >= ? AND date <= ?", fieldID, from, to).
		Order("date, start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	return slotsToDomain(ms), nil
}

func (r *SlotRepository) ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]domain.Slot, error) {
	var ms []slotModel
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND date = ?", fieldID, date).
		Order("start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	return slotsToDomain(ms), nil
}

// ListAvailableByField returns the available slots of a field, the set the
// pricing recompute rewrites.
func (r *SlotRepository) ListAvailableByField(ctx context.Context, fieldID int64) ([]domain.Slot, error) {
	var ms []slotModel
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND status = ?", fieldID, string(domain.SlotAvailable)).
		Order("date, start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	return slotsToDomain(ms), nil
}

// FindAvailableInWindow returns available slots of the given fields lying
// fully inside [start, end) on the date. Booked and blocked slots are never
// returned.
func (r *SlotRepository) FindAvailableInWindow(ctx context.Context, fieldIDs []int64, date time.Time, start, end string) ([]domain.Slot, error) {
	var ms []slotModel
	err := r.db.WithContext(ctx).
		Where("field_id IN ? AND date = ? AND start_time >= ? AND end_time <= ?", fieldIDs, date, start, end).
		Where("status = ? AND booking_id IS NULL", string(domain.SlotAvailable)).
		Order("field_id, start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	return slotsToDomain(ms), nil
}

func (r *SlotRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Slot, error) {
	var ms []slotModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("date, start_time").
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	return slotsToDomain(ms), nil
}

// BulkCreate inserts all slots in one transaction. A unique-index violation
// surfaces as ErrDuplicateSlot and rolls back the whole batch.
func (r *SlotRepository) BulkCreate(ctx context.Context, slots []domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	ms := make([]slotModel, 0, len(slots))
	now := time.Now()
	for i := range slots {
		m := toSlotModel(&slots[i])
		m.CreatedAt = now
		m.UpdatedAt = now
		ms = append(ms, m)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ms).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}

// UpdatePrices rewrites slot prices in one transaction, touching only slots
// that are still available.
func (r *SlotRepository) UpdatePrices(ctx context.Context, prices map[int64]float64) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, price := range prices {
			res := tx.Model(&slotModel{}).
				Where("id = ? AND status = ?", id, string(domain.SlotAvailable)).
				Updates(map[string]interface{}{
					"price":      price,
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return translate(res.Error)
			}
		}
		return nil
	})
}

// SetBlocked moves a slot between available and blocked. Booked slots are
// never touched: the conditional update matches zero rows and the call fails
// with ErrSlotUnavailable.
func (r *SlotRepository) SetBlocked(ctx context.Context, slotID int64, blocked bool) error {
	from, to := domain.SlotAvailable, domain.SlotBlocked
	if !blocked {
		from, to = domain.SlotBlocked, domain.SlotAvailable
	}
	res := r.db.WithContext(ctx).Model(&slotModel{}).
		Where("id = ? AND status = ? AND booking_id IS NULL", slotID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSlotUnavailable
	}
	return nil
}
