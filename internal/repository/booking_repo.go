package repository

import (
	"context"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	FieldID       int64      `gorm:"column:field_id;index"`
	CustomerID    *int64     `gorm:"column:customer_id;index"`
	GuestName     *string    `gorm:"column:guest_name"`
	GuestPhone    *string    `gorm:"column:guest_phone"`
	Status        string     `gorm:"column:status"`
	PaymentStatus string     `gorm:"column:payment_status"`
	Notes         *string    `gorm:"column:notes"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		FieldID:       m.FieldID,
		CustomerID:    m.CustomerID,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CancelledAt:   m.CancelledAt,
	}
	if m.GuestName != nil {
		b.GuestName = *m.GuestName
	}
	if m.GuestPhone != nil {
		b.GuestPhone = *m.GuestPhone
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:            b.ID,
		FieldID:       b.FieldID,
		CustomerID:    b.CustomerID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CancelledAt:   b.CancelledAt,
	}
	// Guest identity is stored only when there is no customer account. This is
	// the write-time guard behind the customer XOR guest constraint.
	if b.CustomerID == nil {
		if b.GuestName != "" {
			v := b.GuestName
			m.GuestName = &v
		}
		if b.GuestPhone != "" {
			v := b.GuestPhone
			m.GuestPhone = &v
		}
	}
	if b.Notes != "" {
		v := b.Notes
		m.Notes = &v
	}
	return m
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CreateWithSlots creates the booking row and reserves every slot in a single
// transaction. Each reservation is a conditional update that only matches a
// slot still available; zero rows affected means another request won the slot
// and the whole transaction rolls back with ErrSlotUnavailable.
func (r *BookingRepository) CreateWithSlots(ctx context.Context, b *domain.Booking, slotIDs []int64, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		m := toBookingModel(b)
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := tx.Create(&m).Error; err != nil {
			return translate(err)
		}

		var slotNotes *string
		if notes != "" {
			v := notes
			slotNotes = &v
		}
		for _, id := range slotIDs {
			res := tx.Model(&slotModel{}).
				Where("id = ? AND status = ? AND booking_id IS NULL", id, string(domain.SlotAvailable)).
				Updates(map[string]interface{}{
					"booking_id": m.ID,
					"status":     string(domain.SlotBooked),
					"notes":      slotNotes,
					"updated_at": now,
				})
			if res.Error != nil {
				return translate(res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrSlotUnavailable
			}
		}

		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelWithSlots cancels the booking and releases its slots atomically.
func (r *BookingRepository) CancelWithSlots(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status <> ?", bookingID, string(domain.BookingCancelled)).
			Updates(map[string]interface{}{
				"status":         string(domain.BookingCancelled),
				"payment_status": string(domain.PaymentCancelled),
				"cancelled_at":   now,
				"updated_at":     now,
			})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		err := tx.Model(&slotModel{}).
			Where("booking_id = ?", bookingID).
			Updates(map[string]interface{}{
				"booking_id": nil,
				"status":     string(domain.SlotAvailable),
				"notes":      nil,
				"updated_at": now,
			}).Error
		return translate(err)
	})
}
