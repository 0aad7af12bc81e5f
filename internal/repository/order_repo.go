package repository

import (
	"context"
	"errors"
	"time"

	"fieldbook/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;index"`
	FacilityID    int64     `gorm:"column:facility_id;index"`
	CustomerID    *int64    `gorm:"column:customer_id"`
	GuestName     *string   `gorm:"column:guest_name"`
	GuestPhone    *string   `gorm:"column:guest_phone"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	DepositAmount float64   `gorm:"column:deposit_amount"`
	DiscountID    *int64    `gorm:"column:discount_id"`
	PaymentStatus string    `gorm:"column:payment_status"`
	TxnRef        string    `gorm:"column:txn_ref;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "orders" }

type orderFieldModel struct {
	ID      int64   `gorm:"column:id;primaryKey"`
	OrderID int64   `gorm:"column:order_id;index"`
	FieldID int64   `gorm:"column:field_id"`
	Price   float64 `gorm:"column:price"`
}

func (orderFieldModel) TableName() string { return "order_fields" }

func toDomainOrder(m orderModel) *domain.Order {
	o := &domain.Order{
		ID:            m.ID,
		BookingID:     m.BookingID,
		FacilityID:    m.FacilityID,
		CustomerID:    m.CustomerID,
		TotalAmount:   m.TotalAmount,
		DepositAmount: m.DepositAmount,
		DiscountID:    m.DiscountID,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TxnRef:        m.TxnRef,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.GuestName != nil {
		o.GuestName = *m.GuestName
	}
	if m.GuestPhone != nil {
		o.GuestPhone = *m.GuestPhone
	}
	return o
}

// CreateWithFields persists the order and its field links in one transaction.
func (r *OrderRepository) CreateWithFields(ctx context.Context, o *domain.Order, items []domain.OrderField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		m := orderModel{
			BookingID:     o.BookingID,
			FacilityID:    o.FacilityID,
			CustomerID:    o.CustomerID,
			TotalAmount:   o.TotalAmount,
			DepositAmount: o.DepositAmount,
			DiscountID:    o.DiscountID,
			PaymentStatus: string(o.PaymentStatus),
			TxnRef:        o.TxnRef,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if o.CustomerID == nil {
			if o.GuestName != "" {
				v := o.GuestName
				m.GuestName = &v
			}
			if o.GuestPhone != "" {
				v := o.GuestPhone
				m.GuestPhone = &v
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			return translate(err)
		}

		for _, it := range items {
			fm := orderFieldModel{OrderID: m.ID, FieldID: it.FieldID, Price: it.Price}
			if err := tx.Create(&fm).Error; err != nil {
				return translate(err)
			}
		}

		*o = *toDomainOrder(m)
		return nil
	})
}

// GetByBookingID returns nil without error when the booking has no order yet.
func (r *OrderRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return toDomainOrder(m), nil
}
