package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cukurin/booking-api/internal/audit"
	domain "github.com/cukurin/booking-api/internal/domain/payment"
	"github.com/cukurin/booking-api/internal/gateway"
	"github.com/cukurin/booking-api/internal/httperr"
	"github.com/cukurin/booking-api/internal/models"
)

// fallbackPhone is used when the customer does not supply one; the gateway
// rejects charges without a phone number.
const fallbackPhone = "08123456789"

// ======================================================
// INPUT / OUTPUT
// ======================================================

type InitiateInput struct {
	BookingID     uint
	PaymentMethod string
	BankName      string
	AccountNumber string
	QrisCode      string
	Phone         string
}

type SnapResult struct {
	Payment *models.Payment
	Booking *domain.BookingContext

	SnapToken   string
	RedirectURL string
}

// ======================================================
// USE CASE
// ======================================================

// CreateSnapPayment builds a hosted-checkout (snap) transaction for a
// booking and persists the resulting payment row with the gateway token.
type CreateSnapPayment struct {
	repo  domain.Repository
	gw    gateway.Gateway
	audit *audit.Dispatcher
}

func NewCreateSnapPayment(
	repo domain.Repository,
	gw gateway.Gateway,
	audit *audit.Dispatcher,
) *CreateSnapPayment {
	return &CreateSnapPayment{
		repo:  repo,
		gw:    gw,
		audit: audit,
	}
}

func (uc *CreateSnapPayment) Execute(
	ctx context.Context,
	in InitiateInput,
) (*SnapResult, error) {

	booking, err := uc.repo.GetBookingContext(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	method := normalizeMethod(in.PaymentMethod)

	now := time.Now().UnixMilli()
	orderID := fmt.Sprintf("ORDER_%d_%d", in.BookingID, now)

	res, err := uc.gw.CreateSnapTransaction(chargeRequest(orderID, booking, method, in))
	if err != nil {
		return nil, fmt.Errorf("gateway charge failed: %w", err)
	}

	p := &models.Payment{
		ID:            fmt.Sprintf("PAYMENT_%d_%d", in.BookingID, now),
		OrderID:       orderID,
		BookingID:     in.BookingID,
		PaymentMethod: method,
		Amount:        booking.Amount,
		BankName:      defaultString(in.BankName, booking.BarberBankName),
		AccountNumber: defaultString(in.AccountNumber, booking.BarberAccountNumber),
		Status:        string(domain.StatusPending),

		BarberID:          booking.BarberID,
		BarberName:        booking.BarberName,
		BarberPhoneNumber: booking.BarberPhoneNumber,
		UserEmail:         booking.UserEmail,

		MidtransToken: res.Token,
		MidtransURL:   res.RedirectURL,
	}
	if method == gateway.MethodQris {
		p.QrisCode = in.QrisCode
	}

	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserEmail: booking.UserEmail,
		Action:    "payment_snap_created",
		Entity:    "payment",
		EntityID:  p.ID,
		Metadata:  map[string]any{"order_id": orderID, "amount": booking.Amount},
	})

	return &SnapResult{
		Payment:     p,
		Booking:     booking,
		SnapToken:   res.Token,
		RedirectURL: res.RedirectURL,
	}, nil
}

// ======================================================
// SHARED HELPERS
// ======================================================

func normalizeMethod(method string) string {
	if method == "bank_transfer" {
		return gateway.MethodTransfer
	}
	return method
}

func defaultString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func chargeRequest(
	orderID string,
	booking *domain.BookingContext,
	method string,
	in InitiateInput,
) gateway.ChargeRequest {
	return gateway.ChargeRequest{
		OrderID:     orderID,
		GrossAmount: int64(booking.Amount),

		ItemID:   fmt.Sprintf("ITEM_%d", booking.BookingID),
		ItemName: fmt.Sprintf("Booking #%d", booking.BookingID),

		// The charge is titled with the barber's name; the customer is
		// identified by email.
		CustomerName:  booking.BarberName,
		CustomerEmail: booking.UserEmail,
		CustomerPhone: defaultString(in.Phone, fallbackPhone),

		PaymentMethod: method,
		BankName:      defaultString(in.BankName, booking.BarberBankName),
	}
}
