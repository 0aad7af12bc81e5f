package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fieldbook/internal/database"
	"fieldbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedSlots(t *testing.T, db *gorm.DB, fieldID int64, date time.Time, clocks ...[2]string) []int64 {
	t.Helper()
	repo := NewSlotRepository(db)
	slots := make([]domain.Slot, 0, len(clocks))
	for _, c := range clocks {
		slots = append(slots, domain.Slot{
			FieldID:   fieldID,
			Date:      date,
			StartTime: c[0],
			EndTime:   c[1],
			Price:     100000,
			Status:    domain.SlotAvailable,
		})
	}
	require.NoError(t, repo.BulkCreate(context.Background(), slots))

	listed, err := repo.ListByFieldAndDate(context.Background(), fieldID, date)
	require.NoError(t, err)
	require.Len(t, listed, len(clocks))

	ids := make([]int64, 0, len(listed))
	for _, sl := range listed {
		ids = append(ids, sl.ID)
	}
	return ids
}

func TestSlotRepository_BulkCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotRepository(db)
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"})

	err := repo.BulkCreate(context.Background(), []domain.Slot{
		{FieldID: 5, Date: date, StartTime: "08:00", EndTime: "08:30", Status: domain.SlotAvailable},
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
}

func TestBookingRepository_CreateWithSlots_ReservesAtomically(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingRepository(db)
	slots := NewSlotRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"}, [2]string{"08:30", "09:00"})

	first := &domain.Booking{
		FieldID:       5,
		GuestName:     "Nguyen Van An",
		GuestPhone:    "0901234567",
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, first, ids, "evening game"))
	require.NotZero(t, first.ID)

	reserved, err := slots.ListByBooking(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, reserved, 2)
	for _, sl := range reserved {
		assert.Equal(t, domain.SlotBooked, sl.Status)
		assert.Equal(t, "evening game", sl.Notes)
	}

	// a second booking for an overlapping slot set loses and leaves no trace
	second := &domain.Booking{
		FieldID:       5,
		GuestName:     "Tran Thi Binh",
		GuestPhone:    "0912345678",
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	err = bookings.CreateWithSlots(ctx, second, ids[:1], "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	var count int64
	require.NoError(t, db.Model(&bookingModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookingRepository_GuestIdentityDroppedForCustomers(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"})

	customerID := int64(9)
	b := &domain.Booking{
		FieldID:       5,
		CustomerID:    &customerID,
		GuestName:     "should not persist",
		GuestPhone:    "0000000000",
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b, ids, ""))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, customerID, *got.CustomerID)
	assert.Empty(t, got.GuestName)
	assert.Empty(t, got.GuestPhone)
}

func TestBookingRepository_CancelWithSlots_ReleasesSlots(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingRepository(db)
	slots := NewSlotRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"}, [2]string{"08:30", "09:00"})

	b := &domain.Booking{
		FieldID:       5,
		GuestName:     "Nguyen Van An",
		GuestPhone:    "0901234567",
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b, ids, "note"))

	require.NoError(t, bookings.CancelWithSlots(ctx, b.ID))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.Equal(t, domain.PaymentCancelled, got.PaymentStatus)
	assert.NotNil(t, got.CancelledAt)

	released, err := slots.ListByFieldAndDate(ctx, 5, date)
	require.NoError(t, err)
	for _, sl := range released {
		assert.Equal(t, domain.SlotAvailable, sl.Status)
		assert.Nil(t, sl.BookingID)
		assert.Empty(t, sl.Notes)
	}

	// cancelling twice reports not found
	assert.ErrorIs(t, bookings.CancelWithSlots(ctx, b.ID), ErrNotFound)
}

func TestSlotRepository_SetBlocked(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingRepository(db)
	slots := NewSlotRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"}, [2]string{"08:30", "09:00"})

	require.NoError(t, slots.SetBlocked(ctx, ids[0], true))
	blocked, err := slots.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, blocked.Status)

	// blocked slots never show up in the booking window
	free, err := slots.FindAvailableInWindow(ctx, []int64{5}, date, "08:00", "09:00")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, ids[1], free[0].ID)

	require.NoError(t, slots.SetBlocked(ctx, ids[0], false))

	// a booked slot cannot be blocked
	b := &domain.Booking{
		FieldID: 5, GuestName: "An", GuestPhone: "0901234567",
		Status: domain.BookingPending, PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b, ids[:1], ""))
	assert.ErrorIs(t, slots.SetBlocked(ctx, ids[0], true), ErrSlotUnavailable)
}

func TestSlotRepository_UpdatePricesSkipsBookedSlots(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingRepository(db)
	slots := NewSlotRepository(db)
	ctx := context.Background()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := seedSlots(t, db, 5, date, [2]string{"08:00", "08:30"}, [2]string{"08:30", "09:00"})

	b := &domain.Booking{
		FieldID: 5, GuestName: "An", GuestPhone: "0901234567",
		Status: domain.BookingPending, PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b, ids[1:], ""))

	require.NoError(t, slots.UpdatePrices(ctx, map[int64]float64{
		ids[0]: 50000,
		ids[1]: 50000,
	}))

	open, err := slots.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, float64(50000), open.Price)

	booked, err := slots.GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, float64(100000), booked.Price)
}
