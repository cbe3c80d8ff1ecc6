package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index;not null" json:"barber_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500;not null" json:"comment"`

	Username *string `gorm:"size:100" json:"username"`

	CreatedAt time.Time `json:"created_at"`
}
