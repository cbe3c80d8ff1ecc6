package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PhoneNumber string   `gorm:"size:20" json:"no_telp"`

	Services         string  `gorm:"size:255;not null" json:"services"`
	Paket            string  `gorm:"size:100;not null" json:"paket"`
	PaketDescription string  `gorm:"size:255" json:"paket_description"`
	Price            float64 `json:"price"`

	ProfileImage string `gorm:"size:255" json:"profile_image"`

	// Payout details copied onto bookings and payments at creation time.
	BankName      string `gorm:"size:50" json:"bank_name"`
	AccountNumber string `gorm:"size:20" json:"account_number"`
	PaymentMethod string `gorm:"size:10" json:"payment_method"`

	GalleryImages []GalleryImage `gorm:"constraint:OnDelete:CASCADE;" json:"gallery_images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GalleryImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"index" json:"barber_id"`
	ImageURL string `gorm:"size:255;not null" json:"image_url"`
}
