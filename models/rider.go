package models

import (
	"time"
)

type Rider struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	SignUpDate time.Time  `gorm:"type:date;not null" json:"sign_up_date"`
	Deliveries []Delivery `gorm:"foreignKey:RiderID" json:"deliveries,omitempty"`
}
