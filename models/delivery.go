package models

// Delivery tracks the hand-off of one order. DeliveryTime stays nil until
// the order is actually delivered; RiderID stays nil until one is assigned.
type Delivery struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"not null;uniqueIndex" json:"order_id"`
	Order        Order   `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Status       string  `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	DeliveryTime *string `gorm:"type:varchar(8)" json:"delivery_time,omitempty"`
	RiderID      *uint   `gorm:"index" json:"rider_id,omitempty"`
	Rider        *Rider  `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
}

// StatusDelivered is the terminal delivery status every report keys on.
const StatusDelivered = "Delivered"
