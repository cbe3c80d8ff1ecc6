package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email string `gorm:"size:100;index;not null" json:"email"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentTime string `gorm:"size:50;not null" json:"appointment_time"`

	Location string `gorm:"size:20;not null" json:"location"`
	Address  string `gorm:"size:255" json:"address"`

	// Snapshot of the barber's coordinates at booking time. Later barber
	// edits must not move an existing booking.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Service          string  `gorm:"size:255;not null" json:"service"`
	Paket            string  `gorm:"size:100" json:"paket"`
	PaketDescription string  `gorm:"size:255" json:"paket_description"`
	Price            float64 `json:"price"`

	// Payout snapshot, also copied from the barber at creation.
	BankName      string `gorm:"size:50" json:"bank_name"`
	AccountNumber string `gorm:"size:20" json:"account_number"`
	PaymentMethod string `gorm:"size:10" json:"payment_method"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
