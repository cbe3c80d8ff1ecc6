package payment

import (
	"context"

	"github.com/cukurin/booking-api/internal/models"
)

// BookingContext is the joined booking + barber + customer view a charge is
// built from.
type BookingContext struct {
	BookingID uint
	Amount    float64
	UserEmail string

	BarberID            uint
	BarberName          string
	BarberPhoneNumber   string
	BarberBankName      string
	BarberAccountNumber string
}

type Repository interface {
	// -------- Booking --------
	GetBookingContext(
		ctx context.Context,
		bookingID uint,
	) (*BookingContext, error)

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	SetGatewayRefs(
		ctx context.Context,
		paymentID string,
		token string,
		redirectURL string,
	) error

	GetPaymentByID(
		ctx context.Context,
		id string,
	) (*models.Payment, error)

	GetPaymentByOrderID(
		ctx context.Context,
		orderID string,
	) (*models.Payment, error)

	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
	) error
}
