package models

type Restaurant struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	City         string  `gorm:"type:varchar(50);not null;index" json:"city"`
	OpeningHours string  `gorm:"type:varchar(50)" json:"opening_hours"`
	Orders       []Order `gorm:"foreignKey:RestaurantID" json:"orders,omitempty"`
}
