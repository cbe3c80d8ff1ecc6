package models

import "time"

type Payment struct {
	ID string `gorm:"primaryKey;size:100" json:"id"`

	OrderID   string `gorm:"size:100;uniqueIndex" json:"order_id"`
	BookingID uint   `gorm:"index" json:"booking_id"`

	PaymentMethod string  `gorm:"size:10;not null" json:"payment_method"`
	Amount        float64 `json:"amount"`

	BankName      string `gorm:"size:50" json:"bank_name"`
	AccountNumber string `gorm:"size:20" json:"account_number"`
	QrisCode      string `gorm:"size:255" json:"qris_code"`

	Status string `gorm:"size:30;default:'pending'" json:"status"`

	// Denormalized at insert time so payment listings survive barber edits.
	BarberID          uint   `gorm:"index" json:"barber_id"`
	BarberName        string `gorm:"size:100" json:"barber_name"`
	BarberPhoneNumber string `gorm:"size:20" json:"barber_phone_number"`
	UserEmail         string `gorm:"size:100" json:"user_email"`

	MidtransToken string `gorm:"size:255" json:"midtrans_token"`
	MidtransURL   string `gorm:"size:255" json:"midtrans_url"`

	Proof *PaymentProof `gorm:"foreignKey:PaymentID" json:"proof,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaymentProof struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID string    `gorm:"size:100;index" json:"payment_id"`
	ProofFile string    `gorm:"size:255;not null" json:"proof_file"`
	CreatedAt time.Time `json:"created_at"`
}
