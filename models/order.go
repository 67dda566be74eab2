package models

import (
	"time"
)

// Order is a single purchase placed by a customer at a restaurant.
// OrderDate carries the calendar date and OrderTime the time of day
// ("HH:MM:SS"), mirroring the DATE/TIME split of the schema.
type Order struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CustomerID   uint       `gorm:"not null;index" json:"customer_id"`
	Customer     Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	OrderItem    string     `gorm:"type:varchar(100);not null" json:"order_item"`
	OrderDate    time.Time  `gorm:"type:date;not null;index" json:"order_date"`
	OrderTime    string     `gorm:"type:varchar(8);not null" json:"order_time"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	TotalAmount  float64    `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Delivery     *Delivery  `gorm:"foreignKey:OrderID" json:"delivery,omitempty"`
}
