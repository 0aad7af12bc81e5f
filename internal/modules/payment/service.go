package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/modules/booking"
)

type Service struct {
	drafts        DraftStore
	slots         SlotRepository
	fields        FieldRepository
	bookings      BookingCreator
	bookingWriter BookingPaymentWriter
	orders        OrderRepository

	cfg       GatewayConfig
	resultURL string
	draftTTL  time.Duration
	loggerf   func(format string, args ...interface{})
	nowFn     func() time.Time
}

// NewService wires the payment-triggered finalizer. resultURL is the frontend
// base the browser is redirected to after the gateway callback.
func NewService(
	drafts DraftStore,
	slots SlotRepository,
	fields FieldRepository,
	bookings BookingCreator,
	bookingWriter BookingPaymentWriter,
	orders OrderRepository,
	cfg GatewayConfig,
	resultURL string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		drafts:        drafts,
		slots:         slots,
		fields:        fields,
		bookings:      bookings,
		bookingWriter: bookingWriter,
		orders:        orders,
		cfg:           cfg,
		resultURL:     resultURL,
		draftTTL:      DefaultDraftTTL,
		loggerf:       loggerf,
		nowFn:         time.Now,
	}
}

// Checkout prices the tentative booking, stages it as a draft keyed by a
// generated order reference, and returns the gateway redirect URL carrying
// that reference and the deposit amount (50% of the total).
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	fieldIDs, err := s.resolveFieldIDs(ctx, req.CreateBookingRequest)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.FindAvailableInWindow(ctx, fieldIDs, date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("find slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	fieldID := slots[0].FieldID
	var total float64
	for _, sl := range slots {
		if sl.FieldID != fieldID {
			continue
		}
		total += sl.Price
	}
	deposit := total / 2

	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("load field: %w", err)
	}

	now := s.nowFn()
	txnRef, err := generateTxnRef(now)
	if err != nil {
		return nil, fmt.Errorf("generate order reference: %w", err)
	}

	draft := &Draft{
		TxnRef:        txnRef,
		Request:       req.CreateBookingRequest,
		FacilityID:    field.FacilityID,
		FieldID:       fieldID,
		TotalAmount:   total,
		DepositAmount: deposit,
		CreatedAt:     now,
	}
	if err := s.drafts.Put(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("stage booking draft: %w", err)
	}

	return &CheckoutResponse{
		TxnRef:        txnRef,
		PaymentURL:    s.buildPayURL(txnRef, deposit, now),
		TotalAmount:   total,
		DepositAmount: deposit,
	}, nil
}

// HandleReturn processes the signed gateway callback. Every outcome is a
// redirect; only a valid signature plus success codes plus a live draft may
// create a booking. The draft is consumed on first use, so a replayed
// callback lands on "booking data not found".
func (s *Service) HandleReturn(ctx context.Context, query url.Values) *ReturnResult {
	txnRef := query.Get("vnp_TxnRef")

	if !verifySignature(query, s.cfg.HashSecret) {
		s.loggerf("level=warn msg=payment callback signature mismatch txn_ref=%s", txnRef)
		return s.failure("invalid_signature")
	}

	if query.Get("vnp_ResponseCode") != respCodeOK || query.Get("vnp_TransactionStatus") != txnStatusOK {
		s.loggerf("level=info msg=payment declined txn_ref=%s response_code=%s txn_status=%s",
			txnRef, query.Get("vnp_ResponseCode"), query.Get("vnp_TransactionStatus"))
		return s.failure("payment_failed")
	}

	draft, err := s.drafts.Consume(ctx, txnRef)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			s.loggerf("level=warn msg=booking data not found for callback txn_ref=%s", txnRef)
			return s.failure("booking_not_found")
		}
		s.loggerf("level=error msg=draft store failure txn_ref=%s err=%v", txnRef, err)
		return s.failure("internal_error")
	}

	details, err := s.bookings.CreateBooking(ctx, draft.Request)
	if err != nil {
		// The money moved but the booking did not. There is no automatic
		// compensation here; reconciliation handles these by txn_ref.
		s.loggerf("level=error msg=payment succeeded but booking creation failed txn_ref=%s err=%v", txnRef, err)
		return s.failure("booking_failed")
	}
	bookingID := details.Booking.ID

	if err := s.bookingWriter.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid); err != nil {
		s.loggerf("level=error msg=failed to mark booking paid booking_id=%d err=%v", bookingID, err)
	}

	order := &domain.Order{
		BookingID:     bookingID,
		FacilityID:    draft.FacilityID,
		CustomerID:    draft.Request.CustomerID,
		GuestName:     draft.Request.GuestName,
		GuestPhone:    draft.Request.GuestPhone,
		TotalAmount:   draft.TotalAmount,
		DepositAmount: draft.DepositAmount,
		DiscountID:    draft.Request.DiscountID,
		PaymentStatus: domain.PaymentPaid,
		TxnRef:        txnRef,
	}
	items := []domain.OrderField{{FieldID: details.Booking.FieldID, Price: draft.TotalAmount}}
	if err := s.orders.CreateWithFields(ctx, order, items); err != nil {
		s.loggerf("level=error msg=order creation failed booking_id=%d txn_ref=%s err=%v", bookingID, txnRef, err)
		return s.failure("order_failed")
	}

	return &ReturnResult{
		RedirectURL: fmt.Sprintf("%s/payment/success?booking_id=%d", s.resultURL, bookingID),
		BookingID:   bookingID,
	}
}

func (s *Service) failure(code string) *ReturnResult {
	return &ReturnResult{RedirectURL: fmt.Sprintf("%s/payment/failure?error=%s", s.resultURL, code)}
}

func (s *Service) buildPayURL(txnRef string, deposit float64, now time.Time) string {
	params := url.Values{}
	params.Set("vnp_Version", vnpVersion)
	params.Set("vnp_Command", vnpCommandPay)
	params.Set("vnp_TmnCode", s.cfg.TmnCode)
	// Gateway amounts are in minor units.
	params.Set("vnp_Amount", strconv.FormatInt(int64(deposit*100), 10))
	params.Set("vnp_CurrCode", vnpCurrency)
	params.Set("vnp_TxnRef", txnRef)
	params.Set("vnp_OrderInfo", "Field booking deposit "+txnRef)
	params.Set("vnp_ReturnUrl", s.cfg.ReturnURL)
	params.Set("vnp_CreateDate", now.Format("20060102150405"))
	params.Set("vnp_Locale", "vn")

	hash := hashData(params, s.cfg.HashSecret)
	return s.cfg.PayURL + "?" + params.Encode() + "&" + secureHashKey + "=" + hash
}

func (s *Service) resolveFieldIDs(ctx context.Context, req booking.CreateBookingRequest) ([]int64, error) {
	if req.FieldID != nil {
		return []int64{*req.FieldID}, nil
	}
	fields, err := s.fields.Find(ctx, req.FacilityID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoSlots
	}
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

// generateTxnRef builds the order reference ORDER_<yyyyMMddHHmmss>_<8-hex>.
func generateTxnRef(now time.Time) (string, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return "ORDER_" + now.Format("20060102150405") + "_" + hex.EncodeToString(raw), nil
}
