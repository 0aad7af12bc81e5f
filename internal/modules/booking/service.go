package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/repository"
)

// cancelLeadTime is the policy window measured against the booking's last
// slot END time. Measuring from the end rather than the start mirrors the
// behavior in production; do not change it without product confirmation.
const cancelLeadTime = 2 * time.Hour

// Optional leading +, optional space/dot/dash separators, 8-15 digits.
var phoneRe = regexp.MustCompile(`^\+?(?:[ .\-]?[0-9]){8,15}$`)

type Service struct {
	bookings   BookingRepository
	slots      SlotRepository
	fields     FieldRepository
	facilities FacilityRepository
	customers  CustomerRepository
	orders     OrderRepository

	nowFn func() time.Time
}

func NewService(
	bookings BookingRepository,
	slots SlotRepository,
	fields FieldRepository,
	facilities FacilityRepository,
	customers CustomerRepository,
	orders OrderRepository,
) *Service {
	return &Service{
		bookings:   bookings,
		slots:      slots,
		fields:     fields,
		facilities: facilities,
		customers:  customers,
		orders:     orders,
		nowFn:      time.Now,
	}
}

// CreateBooking validates the request, resolves available slots for the
// requested window, and reserves them together with the booking row in one
// transaction. No partial reservation is ever observable.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDetails, error) {
	date, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	fieldIDs, err := s.resolveFieldIDs(ctx, req)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.FindAvailableInWindow(ctx, fieldIDs, date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("find slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrSlotConflict
	}

	// When a filter matched several fields, the first field with free slots
	// wins; the booking never spans fields.
	fieldID := slots[0].FieldID
	slotIDs := make([]int64, 0, len(slots))
	for _, sl := range slots {
		if sl.FieldID != fieldID {
			continue
		}
		slotIDs = append(slotIDs, sl.ID)
	}

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("load field: %w", err)
	}
	if !field.IsBookingEnabled {
		return nil, ErrBookingDisabled
	}

	b := &domain.Booking{
		FieldID:       fieldID,
		CustomerID:    req.CustomerID,
		GuestName:     req.GuestName,
		GuestPhone:    req.GuestPhone,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		Notes:         req.Notes,
	}
	if err := s.bookings.CreateWithSlots(ctx, b, slotIDs, req.Notes); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return s.GetBookingDetails(ctx, b.ID)
}

// CancelBooking enforces the lead-time policy and releases the booking's
// slots atomically.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load booking: %w", err)
	}
	if b.Status == domain.BookingCancelled {
		return ErrNotFound
	}

	slots, err := s.slots.ListByBooking(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("load booking slots: %w", err)
	}
	if len(slots) == 0 {
		return ErrNotFound
	}

	var latestEnd time.Time
	for _, sl := range slots {
		if end := sl.EndsAt(); end.After(latestEnd) {
			latestEnd = end
		}
	}
	if !s.nowFn().Before(latestEnd.Add(-cancelLeadTime)) {
		return ErrCancelWindow
	}

	if err := s.bookings.CancelWithSlots(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}

// GetBookingDetails joins field, facility, customer/guest, slots and, when
// present, the order for display.
func (s *Service) GetBookingDetails(ctx context.Context, bookingID int64) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	field, err := s.fields.GetByID(ctx, b.FieldID)
	if err != nil {
		return nil, fmt.Errorf("load field: %w", err)
	}
	facility, err := s.facilities.GetByID(ctx, field.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("load facility: %w", err)
	}

	details := &BookingDetails{
		Booking:      b,
		FieldName:    field.Name,
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		GuestName:    b.GuestName,
		GuestPhone:   b.GuestPhone,
	}

	if b.CustomerID != nil {
		customer, err := s.customers.GetByID(ctx, *b.CustomerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load customer: %w", err)
		}
		if customer != nil {
			details.CustomerName = customer.Name
		}
	}

	slots, err := s.slots.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking slots: %w", err)
	}
	details.Slots = slots
	for _, sl := range slots {
		details.TotalPrice += sl.Price
	}

	order, err := s.orders.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	details.Order = order

	return details, nil
}

func (s *Service) ListCustomerBookings(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.ListByCustomer(ctx, customerID, limit, offset)
}

func (s *Service) validateRequest(req CreateBookingRequest) (time.Time, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date", ErrValidation)
	}
	if req.StartTime >= req.EndTime {
		return time.Time{}, fmt.Errorf("%w: start time must be before end time", ErrValidation)
	}

	now := s.nowFn()
	startsAt := time.Date(date.Year(), date.Month(), date.Day(),
		clockHour(req.StartTime), clockMinute(req.StartTime), 0, 0, now.Location())
	if !startsAt.After(now) {
		return time.Time{}, fmt.Errorf("%w: start time must be in the future", ErrValidation)
	}

	if req.CustomerID == nil {
		if req.GuestName == "" || req.GuestPhone == "" {
			return time.Time{}, fmt.Errorf("%w: guest name and phone are required", ErrValidation)
		}
		if !phoneRe.MatchString(req.GuestPhone) {
			return time.Time{}, fmt.Errorf("%w: invalid guest phone number", ErrValidation)
		}
	}

	if req.FieldID == nil && req.FacilityID == nil && req.CategoryID == nil {
		return time.Time{}, fmt.Errorf("%w: a field id or a facility/category filter is required", ErrValidation)
	}
	return date, nil
}

func (s *Service) resolveFieldIDs(ctx context.Context, req CreateBookingRequest) ([]int64, error) {
	if req.FieldID != nil {
		if _, err := s.fields.GetByID(ctx, *req.FieldID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: field %d", ErrNotFound, *req.FieldID)
			}
			return nil, fmt.Errorf("load field: %w", err)
		}
		return []int64{*req.FieldID}, nil
	}

	fields, err := s.fields.Find(ctx, req.FacilityID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no field matches the filter", ErrNotFound)
	}
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

func clockHour(clock string) int   { return int(clock[0]-'0')*10 + int(clock[1]-'0') }
func clockMinute(clock string) int { return int(clock[3]-'0')*10 + int(clock[4]-'0') }
