package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/cukurin/booking-api/internal/domain/payment"
	"github.com/cukurin/booking-api/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// --------------------------------------------------
// Booking context
// --------------------------------------------------

func (r *PaymentGormRepository) GetBookingContext(
	ctx context.Context,
	bookingID uint,
) (*domain.BookingContext, error) {

	var row domain.BookingContext
	if err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id,
			bookings.price AS amount,
			users.email AS user_email,
			bookings.barber_id AS barber_id,
			barbers.name AS barber_name,
			barbers.phone_number AS barber_phone_number,
			barbers.bank_name AS barber_bank_name,
			barbers.account_number AS barber_account_number`).
		Joins("JOIN users ON bookings.email = users.email").
		Joins("JOIN barbers ON bookings.barber_id = barbers.id").
		Where("bookings.id = ?", bookingID).
		Take(&row).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) SetGatewayRefs(
	ctx context.Context,
	paymentID string,
	token string,
	redirectURL string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{
			"midtrans_token": token,
			"midtrans_url":   redirectURL,
		}).Error
}

func (r *PaymentGormRepository) GetPaymentByID(
	ctx context.Context,
	id string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) GetPaymentByOrderID(
	ctx context.Context,
	orderID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.Status,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
