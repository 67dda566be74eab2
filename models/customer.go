package models

import (
	"time"
)

type Customer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`
	RegistrationDate time.Time `gorm:"type:date;not null" json:"registration_date"`
	Orders           []Order   `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}
