package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/arjunmehra/delivery-analytics/models"
	"github.com/arjunmehra/delivery-analytics/utils"
)

// SeedSampleData loads a small two-year dataset for local runs. It is a
// no-op when orders already exist, so restarting the service is safe.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if utils.InfoLogger != nil {
			utils.InfoLogger.Println("seed skipped: dataset already loaded")
		}
		return nil
	}

	rider2 := uint(2)
	rider1 := uint(1)
	rider3 := uint(3)

	ds := &Dataset{
		Customers: []models.Customer{
			{ID: 1, Name: "Arjun Mehta", RegistrationDate: date(2022, 3, 14)},
			{ID: 2, Name: "Sneha Iyer", RegistrationDate: date(2022, 7, 2)},
			{ID: 3, Name: "Rohan Das", RegistrationDate: date(2023, 1, 20)},
			{ID: 4, Name: "Priya Nair", RegistrationDate: date(2023, 5, 8)},
		},
		Restaurants: []models.Restaurant{
			{ID: 1, Name: "Spice Route", City: "Mumbai", OpeningHours: "10:00 - 23:00"},
			{ID: 2, Name: "Tandoor Tales", City: "Mumbai", OpeningHours: "11:00 - 23:30"},
			{ID: 3, Name: "Dosa Corner", City: "Bengaluru", OpeningHours: "08:00 - 22:00"},
		},
		Riders: []models.Rider{
			{ID: 1, Name: "Vikram Singh", SignUpDate: date(2022, 11, 1)},
			{ID: 2, Name: "Aslam Khan", SignUpDate: date(2023, 2, 15)},
			{ID: 3, Name: "Deepak Rao", SignUpDate: date(2023, 9, 30)},
		},
		Orders: []models.Order{
			{ID: 1, CustomerID: 1, RestaurantID: 1, OrderItem: "Chicken Biryani", OrderDate: date(2023, 1, 12), OrderTime: "13:05:00", Status: "Completed", TotalAmount: 320},
			{ID: 2, CustomerID: 1, RestaurantID: 1, OrderItem: "Chicken Biryani", OrderDate: date(2023, 2, 3), OrderTime: "20:40:00", Status: "Completed", TotalAmount: 320},
			{ID: 3, CustomerID: 1, RestaurantID: 2, OrderItem: "Paneer Tikka", OrderDate: date(2023, 3, 21), OrderTime: "19:10:00", Status: "Completed", TotalAmount: 280},
			{ID: 4, CustomerID: 2, RestaurantID: 2, OrderItem: "Butter Naan", OrderDate: date(2023, 4, 2), OrderTime: "12:30:00", Status: "Completed", TotalAmount: 150},
			{ID: 5, CustomerID: 2, RestaurantID: 3, OrderItem: "Masala Dosa", OrderDate: date(2023, 6, 18), OrderTime: "09:15:00", Status: "Completed", TotalAmount: 120},
			{ID: 6, CustomerID: 3, RestaurantID: 3, OrderItem: "Masala Dosa", OrderDate: date(2023, 8, 9), OrderTime: "08:45:00", Status: "Completed", TotalAmount: 120},
			{ID: 7, CustomerID: 3, RestaurantID: 1, OrderItem: "Chicken Biryani", OrderDate: date(2023, 11, 27), OrderTime: "21:55:00", Status: "Cancelled", TotalAmount: 320},
			{ID: 8, CustomerID: 2, RestaurantID: 1, OrderItem: "Mutton Korma", OrderDate: date(2024, 1, 14), OrderTime: "20:05:00", Status: "Completed", TotalAmount: 450},
			{ID: 9, CustomerID: 2, RestaurantID: 2, OrderItem: "Paneer Tikka", OrderDate: date(2024, 3, 30), OrderTime: "18:20:00", Status: "Completed", TotalAmount: 280},
			{ID: 10, CustomerID: 4, RestaurantID: 3, OrderItem: "Filter Coffee", OrderDate: date(2024, 5, 11), OrderTime: "07:50:00", Status: "Completed", TotalAmount: 60},
			{ID: 11, CustomerID: 4, RestaurantID: 3, OrderItem: "Masala Dosa", OrderDate: date(2024, 7, 22), OrderTime: "09:35:00", Status: "Completed", TotalAmount: 120},
			{ID: 12, CustomerID: 4, RestaurantID: 1, OrderItem: "Chicken Biryani", OrderDate: date(2024, 9, 2), OrderTime: "23:50:00", Status: "Completed", TotalAmount: 320},
		},
		Deliveries: []models.Delivery{
			{ID: 1, OrderID: 1, Status: models.StatusDelivered, DeliveryTime: clock("13:22:00"), RiderID: &rider1},
			{ID: 2, OrderID: 2, Status: models.StatusDelivered, DeliveryTime: clock("20:58:00"), RiderID: &rider1},
			{ID: 3, OrderID: 3, Status: models.StatusDelivered, DeliveryTime: clock("19:24:00"), RiderID: &rider2},
			{ID: 4, OrderID: 4, Status: models.StatusDelivered, DeliveryTime: clock("12:44:00"), RiderID: &rider2},
			{ID: 5, OrderID: 5, Status: models.StatusDelivered, DeliveryTime: clock("09:28:00"), RiderID: &rider2},
			{ID: 6, OrderID: 6, Status: models.StatusDelivered, DeliveryTime: clock("09:03:00"), RiderID: &rider3},
			{ID: 7, OrderID: 7, Status: "Cancelled", RiderID: &rider3},
			{ID: 8, OrderID: 8, Status: models.StatusDelivered, DeliveryTime: clock("20:21:00"), RiderID: &rider1},
			{ID: 9, OrderID: 9, Status: models.StatusDelivered, DeliveryTime: clock("18:39:00"), RiderID: &rider2},
			{ID: 10, OrderID: 10, Status: models.StatusDelivered, DeliveryTime: clock("08:02:00"), RiderID: &rider3},
			{ID: 11, OrderID: 11, Status: models.StatusDelivered, DeliveryTime: clock("09:49:00"), RiderID: &rider3},
			{ID: 12, OrderID: 12, Status: models.StatusDelivered, DeliveryTime: clock("00:10:00"), RiderID: &rider1},
		},
	}

	return LoadDataset(db, ds)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(s string) *string {
	return &s
}
