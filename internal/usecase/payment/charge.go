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
	"github.com/cukurin/booking-api/internal/qr"
)

type ChargeResult struct {
	Payment *models.Payment
	Booking *domain.BookingContext

	QRCodeImage string
	Token       string
	RedirectURL string
}

// ChargePayment runs a direct (non-hosted) charge against the gateway. The
// payment row is inserted as pending before the gateway call; a gateway
// failure leaves that row without a token, matching the persisted-state
// contract of the API.
type ChargePayment struct {
	repo  domain.Repository
	gw    gateway.Gateway
	audit *audit.Dispatcher
}

func NewChargePayment(
	repo domain.Repository,
	gw gateway.Gateway,
	audit *audit.Dispatcher,
) *ChargePayment {
	return &ChargePayment{
		repo:  repo,
		gw:    gw,
		audit: audit,
	}
}

func (uc *ChargePayment) Execute(
	ctx context.Context,
	in InitiateInput,
) (*ChargeResult, error) {

	method := normalizeMethod(in.PaymentMethod)

	switch method {
	case gateway.MethodTransfer:
		if in.BankName == "" || in.AccountNumber == "" {
			return nil, httperr.ErrBusiness("bank_details_required")
		}
	case gateway.MethodQris:
		if in.QrisCode == "" {
			return nil, httperr.ErrBusiness("qris_code_required")
		}
	default:
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	booking, err := uc.repo.GetBookingContext(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	now := time.Now().UnixMilli()
	orderID := fmt.Sprintf("ORDER_%d_%d", in.BookingID, now)

	p := &models.Payment{
		ID:            fmt.Sprintf("PAYMENT_%d_%d", in.BookingID, now),
		OrderID:       orderID,
		BookingID:     in.BookingID,
		PaymentMethod: method,
		Amount:        booking.Amount,
		Status:        string(domain.StatusPending),

		BarberID:          booking.BarberID,
		BarberName:        booking.BarberName,
		BarberPhoneNumber: booking.BarberPhoneNumber,
		UserEmail:         booking.UserEmail,
	}

	if method == gateway.MethodTransfer {
		p.BankName = in.BankName
		p.AccountNumber = in.AccountNumber
	} else {
		p.BankName = booking.BarberBankName
		p.AccountNumber = booking.BarberAccountNumber
		p.QrisCode = in.QrisCode
	}

	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	var qrImage string
	if method == gateway.MethodQris {
		if qrImage, err = qr.DataURL(in.QrisCode); err != nil {
			return nil, err
		}
	}

	res, err := uc.gw.Charge(chargeRequest(orderID, booking, method, in))
	if err != nil {
		// The pending row stays behind without gateway refs.
		return nil, fmt.Errorf("gateway charge failed: %w", err)
	}

	if err := uc.repo.SetGatewayRefs(ctx, p.ID, res.Token, res.RedirectURL); err != nil {
		return nil, err
	}
	p.MidtransToken = res.Token
	p.MidtransURL = res.RedirectURL

	uc.audit.Dispatch(audit.Event{
		UserEmail: booking.UserEmail,
		Action:    "payment_charged",
		Entity:    "payment",
		EntityID:  p.ID,
		Metadata:  map[string]any{"order_id": orderID, "method": method},
	})

	return &ChargeResult{
		Payment:     p,
		Booking:     booking,
		QRCodeImage: qrImage,
		Token:       res.Token,
		RedirectURL: res.RedirectURL,
	}, nil
}
