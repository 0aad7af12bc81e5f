package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/modules/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) FindAvailableInWindow(ctx context.Context, fieldIDs []int64, date time.Time, start, end string) ([]domain.Slot, error) {
	args := m.Called(ctx, fieldIDs, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Field), args.Error(1)
}

func (m *MockFieldRepository) Find(ctx context.Context, facilityID, categoryID *int64) ([]domain.Field, error) {
	args := m.Called(ctx, facilityID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Field), args.Error(1)
}

type MockBookingCreator struct {
	mock.Mock
}

func (m *MockBookingCreator) CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*booking.BookingDetails, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookingDetails), args.Error(1)
}

type MockBookingPaymentWriter struct {
	mock.Mock
}

func (m *MockBookingPaymentWriter) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithFields(ctx context.Context, o *domain.Order, items []domain.OrderField) error {
	args := m.Called(ctx, o, items)
	return args.Error(0)
}

type paymentMocks struct {
	slots    *MockSlotRepository
	fields   *MockFieldRepository
	creator  *MockBookingCreator
	writer   *MockBookingPaymentWriter
	orders   *MockOrderRepository
	drafts   *MemoryDraftStore
	resultTo string
}

func newPaymentService() (*Service, *paymentMocks) {
	m := &paymentMocks{
		slots:    new(MockSlotRepository),
		fields:   new(MockFieldRepository),
		creator:  new(MockBookingCreator),
		writer:   new(MockBookingPaymentWriter),
		orders:   new(MockOrderRepository),
		drafts:   NewMemoryDraftStore(),
		resultTo: "https://booking.example.com",
	}
	cfg := GatewayConfig{
		TmnCode:    "TESTCODE",
		HashSecret: "test-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://api.example.com/api/v1/payments/vnpay/return",
	}
	svc := NewService(m.drafts, m.slots, m.fields, m.creator, m.writer, m.orders, cfg, m.resultTo, nil)
	return svc, m
}

func ptr(v int64) *int64 { return &v }

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{CreateBookingRequest: booking.CreateBookingRequest{
		FieldID:    ptr(5),
		Date:       "2025-01-01",
		StartTime:  "08:00",
		EndTime:    "09:00",
		GuestName:  "Nguyen Van An",
		GuestPhone: "0901234567",
	}}
}

func stageCheckout(t *testing.T, svc *Service, m *paymentMocks) *CheckoutResponse {
	t.Helper()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.slots.On("FindAvailableInWindow", mock.Anything, []int64{5}, date, "08:00", "09:00").
		Return([]domain.Slot{
			{ID: 11, FieldID: 5, Date: date, StartTime: "08:00", EndTime: "08:30", Price: 100000},
			{ID: 12, FieldID: 5, Date: date, StartTime: "08:30", EndTime: "09:00", Price: 100000},
		}, nil)
	m.fields.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Field{ID: 5, FacilityID: 1, IsBookingEnabled: true}, nil)

	resp, err := svc.Checkout(context.Background(), checkoutRequest())
	require.NoError(t, err)
	return resp
}

// signedCallback builds a gateway return query with a valid signature.
func signedCallback(secret, txnRef, respCode, txnStatus string) url.Values {
	q := url.Values{}
	q.Set("vnp_TxnRef", txnRef)
	q.Set("vnp_ResponseCode", respCode)
	q.Set("vnp_TransactionStatus", txnStatus)
	q.Set("vnp_Amount", "10000000")
	q.Set("vnp_TmnCode", "TESTCODE")
	q.Set("vnp_SecureHash", hashData(q, secret))
	return q
}

func TestService_Checkout_StagesDraftAndBuildsPayURL(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	assert.Equal(t, float64(200000), resp.TotalAmount)
	assert.Equal(t, float64(100000), resp.DepositAmount)
	assert.True(t, strings.HasPrefix(resp.TxnRef, "ORDER_"))

	u, err := url.Parse(resp.PaymentURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, resp.TxnRef, q.Get("vnp_TxnRef"))
	// deposit in minor units
	assert.Equal(t, "10000000", q.Get("vnp_Amount"))
	assert.Equal(t, "TESTCODE", q.Get("vnp_TmnCode"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))
	assert.True(t, verifySignature(q, "test-secret"))

	// the draft is retrievable exactly once under the returned reference
	draft, err := m.drafts.Consume(context.Background(), resp.TxnRef)
	require.NoError(t, err)
	assert.Equal(t, float64(200000), draft.TotalAmount)
	assert.Equal(t, int64(5), draft.FieldID)
	assert.Equal(t, int64(1), draft.FacilityID)
}

func TestService_Checkout_NoSlotsInWindow(t *testing.T) {
	svc, m := newPaymentService()
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.slots.On("FindAvailableInWindow", mock.Anything, []int64{5}, date, "08:00", "09:00").
		Return([]domain.Slot{}, nil)

	_, err := svc.Checkout(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, ErrNoSlots)
}

func TestService_HandleReturn_SuccessCreatesBookingAndOrder(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	m.creator.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&booking.BookingDetails{
			Booking: &domain.Booking{ID: 42, FieldID: 5},
		}, nil)
	m.writer.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).
		Return(nil)
	m.orders.On("CreateWithFields", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	result := svc.HandleReturn(context.Background(), signedCallback("test-secret", resp.TxnRef, "00", "00"))

	assert.Equal(t, int64(42), result.BookingID)
	assert.Equal(t, "https://booking.example.com/payment/success?booking_id=42", result.RedirectURL)

	m.orders.AssertCalled(t, "CreateWithFields", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.BookingID == 42 &&
			o.TxnRef == resp.TxnRef &&
			o.TotalAmount == 200000 &&
			o.DepositAmount == 100000 &&
			o.PaymentStatus == domain.PaymentPaid
	}), mock.Anything)
}

func TestService_HandleReturn_ReplayedCallbackFindsNoDraft(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	m.creator.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&booking.BookingDetails{Booking: &domain.Booking{ID: 42, FieldID: 5}}, nil)
	m.writer.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).Return(nil)
	m.orders.On("CreateWithFields", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	query := signedCallback("test-secret", resp.TxnRef, "00", "00")

	first := svc.HandleReturn(context.Background(), query)
	assert.Equal(t, int64(42), first.BookingID)

	second := svc.HandleReturn(context.Background(), query)
	assert.Equal(t, "https://booking.example.com/payment/failure?error=booking_not_found", second.RedirectURL)
	m.creator.AssertNumberOfCalls(t, "CreateBooking", 1)
}

func TestService_HandleReturn_TamperedSignature(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	query := signedCallback("test-secret", resp.TxnRef, "00", "00")
	query.Set("vnp_Amount", "1") // tamper after signing

	result := svc.HandleReturn(context.Background(), query)

	assert.Equal(t, "https://booking.example.com/payment/failure?error=invalid_signature", result.RedirectURL)
	m.creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)

	// the draft is untouched and a later valid callback still succeeds
	m.creator.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&booking.BookingDetails{Booking: &domain.Booking{ID: 42, FieldID: 5}}, nil)
	m.writer.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).Return(nil)
	m.orders.On("CreateWithFields", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	valid := svc.HandleReturn(context.Background(), signedCallback("test-secret", resp.TxnRef, "00", "00"))
	assert.Equal(t, int64(42), valid.BookingID)
}

func TestService_HandleReturn_MissingSignature(t *testing.T) {
	svc, m := newPaymentService()

	q := url.Values{}
	q.Set("vnp_TxnRef", "ORDER_20250101080000_deadbeef")
	q.Set("vnp_ResponseCode", "00")
	q.Set("vnp_TransactionStatus", "00")

	result := svc.HandleReturn(context.Background(), q)
	assert.Contains(t, result.RedirectURL, "error=invalid_signature")
	m.creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestService_HandleReturn_DeclinedPayment(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	result := svc.HandleReturn(context.Background(), signedCallback("test-secret", resp.TxnRef, "24", "02"))

	assert.Equal(t, "https://booking.example.com/payment/failure?error=payment_failed", result.RedirectURL)
	m.creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)

	// a declined payment does not consume the draft
	_, err := m.drafts.Consume(context.Background(), resp.TxnRef)
	assert.NoError(t, err)
}

func TestService_HandleReturn_UnknownReference(t *testing.T) {
	svc, m := newPaymentService()

	result := svc.HandleReturn(context.Background(), signedCallback("test-secret", "ORDER_20250101080000_deadbeef", "00", "00"))

	assert.Equal(t, "https://booking.example.com/payment/failure?error=booking_not_found", result.RedirectURL)
	m.creator.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestService_HandleReturn_BookingCreationFails(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	m.creator.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, errors.New("slot gone"))

	result := svc.HandleReturn(context.Background(), signedCallback("test-secret", resp.TxnRef, "00", "00"))

	assert.Equal(t, "https://booking.example.com/payment/failure?error=booking_failed", result.RedirectURL)
	m.orders.AssertNotCalled(t, "CreateWithFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleReturn_OrderCreationFails(t *testing.T) {
	svc, m := newPaymentService()
	resp := stageCheckout(t, svc, m)

	m.creator.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&booking.BookingDetails{Booking: &domain.Booking{ID: 42, FieldID: 5}}, nil)
	m.writer.On("UpdatePaymentStatus", mock.Anything, int64(42), domain.PaymentPaid).Return(nil)
	m.orders.On("CreateWithFields", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("db down"))

	result := svc.HandleReturn(context.Background(), signedCallback("test-secret", resp.TxnRef, "00", "00"))
	assert.Equal(t, "https://booking.example.com/payment/failure?error=order_failed", result.RedirectURL)
}

func TestVerifySignature(t *testing.T) {
	q := url.Values{}
	q.Set("vnp_TxnRef", "ORDER_20250101080000_deadbeef")
	q.Set("vnp_Amount", "10000000")
	q.Set("other_param", "ignored") // non-vnp_ keys stay out of the hash

	q.Set("vnp_SecureHash", hashData(q, "secret"))
	assert.True(t, verifySignature(q, "secret"))

	// uppercase hex from the gateway still verifies
	q.Set("vnp_SecureHash", strings.ToUpper(hashData(q, "secret")))
	assert.True(t, verifySignature(q, "secret"))

	assert.False(t, verifySignature(q, "other-secret"))

	q.Del("vnp_SecureHash")
	assert.False(t, verifySignature(q, "secret"))
}
